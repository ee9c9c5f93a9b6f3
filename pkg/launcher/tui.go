/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package launcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/pairing"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

const (
	appPadding     = 2
	digitPadding   = 1
	maxChannels    = 6
	clockLayout    = "15:04"
	dateLayout     = "Mon 2 Jan"
	alarmLayout    = "Mon 15:04"
	temperatureFmt = "%s  %.0f°C  %s"
)

type styles struct {
	title, subtitle, digit, help, hint, banner, app lipgloss.Style
	toast                                           map[notify.Kind]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		digit: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)).
			Bold(true).
			Padding(0, digitPadding).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaPurple)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		app: lipgloss.NewStyle().
			Padding(1, appPadding).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
		toast: map[notify.Kind]lipgloss.Style{
			notify.KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaGreen)),
			notify.KindError:   lipgloss.NewStyle().Foreground(lipgloss.Color(draculaRed)).Bold(true),
			notify.KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan)),
			notify.KindWarning: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaOrange)),
		},
	}
}

// viewSource is the part of Session the TUI needs.
type viewSource interface {
	View() View
	Updates() <-chan struct{}
	RequestCode(ctx context.Context) (string, error)
}

type updateMsg struct{}

type codeMsg struct{ err error }

type model struct {
	ctx        context.Context
	src        viewSource
	view       View
	spinner    spinner.Model
	styles     styles
	requesting bool
	err        error
	quitting   bool
}

func newModel(ctx context.Context, src viewSource) *model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple))),
	)

	return &model{
		ctx:     ctx,
		src:     src,
		view:    src.View(),
		spinner: sp,
		styles:  newStyles(),
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForUpdate())
}

func (m *model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.src.Updates():
			return updateMsg{}
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

func (m *model) requestCode() tea.Cmd {
	return func() tea.Msg {
		_, err := m.src.RequestCode(m.ctx)

		return codeMsg{err: err}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case updateMsg:
		m.view = m.src.View()

		return m, m.waitForUpdate()
	case codeMsg:
		m.requesting = false
		m.err = msg.err
		m.view = m.src.View()

		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true

		return m, tea.Quit
	case "r", "R":
		if m.requesting || m.view.State == pairing.StatePaired {
			return m, nil
		}

		m.requesting = true
		m.err = nil

		return m, m.requestCode()
	}

	return m, nil
}

func (m *model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	if m.view.Stale {
		b.WriteString(m.styles.banner.Render("Connection to the hotel system lost. Retrying..."))
		b.WriteString("\n\n")
	}

	switch m.view.Screen {
	case ScreenWelcome:
		m.renderWelcome(&b)
	case ScreenStandby:
		b.WriteString(m.styles.help.Render("Standby"))
		b.WriteString("\n")
	default:
		m.renderPairing(&b)
	}

	if t := m.view.Toast; t != nil {
		style, ok := m.styles.toast[t.Kind]
		if !ok {
			style = m.styles.hint
		}

		b.WriteString("\n")
		b.WriteString(style.Render(toastLine(*t)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.helpLine()))

	return m.styles.app.Render(b.String())
}

func (m *model) renderPairing(b *strings.Builder) {
	b.WriteString(m.styles.title.Render("Pair this TV"))
	b.WriteString("\n\n")

	switch {
	case len(m.view.CodeDigits) > 0:
		boxes := make([]string, 0, len(m.view.CodeDigits))
		for _, d := range m.view.CodeDigits {
			boxes = append(boxes, m.styles.digit.Render(d))
		}

		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
		b.WriteString("\n\n")
		b.WriteString(m.styles.hint.Render("Enter this code in the hotel dashboard under Devices"))
		b.WriteString("\n")
	case m.requesting:
		b.WriteString(m.spinner.View() + " Requesting pairing code...")
		b.WriteString("\n")
	default:
		b.WriteString(m.styles.banner.Render("No pairing code."))
		b.WriteString(" ")
		b.WriteString(m.styles.hint.Render("Press r to try again"))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.banner.Render(rpc.UserMessage(m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.spinner.View() + " Waiting for pairing")
	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("Device " + m.view.DeviceID))
	b.WriteString("\n")
}

func (m *model) renderWelcome(b *strings.Builder) {
	v := m.view

	if title := v.Title(); title != "" {
		b.WriteString(m.styles.title.Render(title))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.subtitle.Render(v.Greeting()))
	b.WriteString("\n\n")

	line := v.Now.Format(clockLayout) + "  " + v.Now.Format(dateLayout)
	if v.Room != "" {
		line = "Room " + v.Room + "  " + line
	}

	b.WriteString(line)
	b.WriteString("\n")

	if v.Content == nil {
		b.WriteString(m.spinner.View() + " Loading hotel information...")
		b.WriteString("\n")

		return
	}

	if w := v.Content.Weather; w != nil {
		b.WriteString(m.styles.hint.Render(fmt.Sprintf(temperatureFmt, w.City, w.Temperature, w.Condition)))
		b.WriteString("\n")
	}

	if chans := v.Content.Channels; len(chans) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.subtitle.Render("Channels"))
		b.WriteString("\n")

		for i, ch := range chans {
			if i == maxChannels {
				b.WriteString(m.styles.help.Render(fmt.Sprintf("  and %d more", len(chans)-maxChannels)))
				b.WriteString("\n")

				break
			}

			b.WriteString(fmt.Sprintf("  %3d  %s\n", ch.ChannelNumber, ch.Name))
		}
	}

	if n := len(v.Content.Menu); n > 0 {
		b.WriteString(fmt.Sprintf("\nRoom service: %d items\n", n))
	}

	if len(v.Alarms) > 0 {
		b.WriteString(m.styles.hint.Render("Wake-up call " + v.Alarms[0].Next.Format(alarmLayout)))
		b.WriteString("\n")
	}
}

func (m *model) helpLine() string {
	if m.view.State == pairing.StatePaired {
		return "q: quit"
	}

	return "r: new code • q: quit"
}

func toastLine(t notify.Toast) string {
	line := t.Title
	if t.Message != "" {
		line += ": " + t.Message
	}

	if t.Action != "" {
		line += " [" + t.Action + "]"
	}

	return line
}

// RunTUI renders the session in the terminal until the user quits or ctx ends.
func RunTUI(ctx context.Context, s *Session) error {
	p := tea.NewProgram(newModel(ctx, s), tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("launcher ui: %w", err)
	}

	return nil
}
