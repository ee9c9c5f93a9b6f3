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

// Package cli is the staff dashboard command line: login, CRUD over every CMS namespace,
// spreadsheet export, device pairing and remote control, and the live service request feed.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

// Dracula theme colors.
const (
	defaultFilePerms  = 0600
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
	tokenPadding    = 2
	inputWidth      = 40
	focusedUsername = 0
	focusedPassword = 1
	focusedDone     = 2
)

// Styling with lipgloss (for TUI mode).
func newStyles() struct {
	focused, focused2, help, hint, success, error, token, app lipgloss.Style
} {
	return struct {
		focused, focused2, help, hint, success, error, token, app lipgloss.Style
	}{
		focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		focused2: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		token: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaPurple)).
			Padding(0, tokenPadding),
		app: lipgloss.NewStyle().
			Padding(1, tokenPadding).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
	}
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Width = inputWidth
	in.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	return in
}

func initialModel(ctx context.Context, login LoginFunc, username string) *model {
	ui := newInput("Username")
	ui.SetValue(username)

	pi := newInput("Password")
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '•'

	focused := focusedUsername
	if username != "" {
		focused = focusedPassword
		pi.Focus()
	} else {
		ui.Focus()
	}

	canCopy := true
	if err := clipboard.WriteAll(""); err != nil {
		canCopy = false
	}

	return &model{
		ctx:           ctx,
		login:         login,
		usernameInput: ui,
		passwordInput: pi,
		focused:       focused,
		canCopy:       canCopy,
		styles:        newStyles(),
	}
}

func (*model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if lm, ok := msg.(loginMsg); ok {
		return m.handleLogin(lm)
	}

	var cmd tea.Cmd

	if !m.busy {
		switch m.focused {
		case focusedUsername:
			m.usernameInput, cmd = m.usernameInput.Update(msg)
		case focusedPassword:
			m.passwordInput, cmd = m.passwordInput.Update(msg)
		}
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(keyMsg, cmd)
	}

	return m, cmd
}

func (m *model) handleKeyMsg(msg tea.KeyMsg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // Default case handles all unlisted keys
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.quit()
	case tea.KeyEnter:
		return m.handleEnter(cmd)
	case tea.KeyTab:
		return m.handleTab(cmd)
	default:
		return m.handleDefault(msg, cmd)
	}
}

func (m *model) quit() (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func (m *model) handleEnter(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch {
	case m.busy:
		return m, nil
	case m.focused == focusedUsername:
		return m.focusPassword()
	case m.focused == focusedPassword:
		return m.submit()
	case m.focused == focusedDone:
		return m.quit()
	}

	return m, cmd
}

func (m *model) handleTab(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	switch m.focused {
	case focusedUsername:
		return m.focusPassword()
	case focusedPassword:
		m.passwordInput.Blur()
		m.usernameInput.Focus()
		m.focused = focusedUsername

		return m, textinput.Blink
	}

	return m, cmd
}

func (m *model) focusPassword() (tea.Model, tea.Cmd) {
	m.usernameInput.Blur()
	m.passwordInput.Focus()
	m.focused = focusedPassword

	return m, textinput.Blink
}

func (m *model) handleDefault(msg tea.KeyMsg, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.focused == focusedDone && strings.EqualFold(msg.String(), "c") && m.canCopy {
		if err := clipboard.WriteAll(m.session.Token); err != nil {
			m.copyMessage = "Failed to copy to clipboard"
		} else {
			m.copyMessage = "Token copied to clipboard!"
		}
	}

	return m, cmd
}

func (m *model) submit() (tea.Model, tea.Cmd) {
	req := models.LoginRequest{
		Username: strings.TrimSpace(m.usernameInput.Value()),
		Password: m.passwordInput.Value(),
	}

	if req.Username == "" || req.Password == "" {
		m.err = errCredentials

		return m, nil
	}

	m.busy = true
	m.err = nil

	ctx, login := m.ctx, m.login

	return m, func() tea.Msg {
		session, err := login(ctx, req)

		return loginMsg{session: session, err: err}
	}
}

func (m *model) handleLogin(msg loginMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if msg.err != nil {
		m.err = fmt.Errorf("login failed: %s", rpc.UserMessage(msg.err))
		m.passwordInput.SetValue("")

		return m, nil
	}

	m.session = msg.session
	m.err = nil
	m.focused = focusedDone
	m.passwordInput.Blur()
	m.copyMessage = ""

	return m, nil
}

func (m *model) View() string {
	var content strings.Builder

	styles := m.styles

	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple)).Render("🏨 "),
		styles.focused.Render("Hotel TV Dashboard: Staff Login"),
	)

	content.WriteString(title + "\n\n")

	if m.focused < focusedDone {
		content.WriteString(m.renderInputView())
	} else {
		content.WriteString(m.renderResultView())
	}

	if m.err != nil {
		content.WriteString("\n\n")
		content.WriteString(styles.error.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return styles.app.Align(lipgloss.Left).Render(content.String())
}

func (m *model) renderInputView() string {
	var content strings.Builder

	styles := m.styles

	content.WriteString(lipgloss.JoinVertical(lipgloss.Left,
		styles.focused2.Render("Username:"), m.usernameInput.View()) + "\n\n")
	content.WriteString(lipgloss.JoinVertical(lipgloss.Left,
		styles.focused2.Render("Password:"), m.passwordInput.View()) + "\n\n")

	if m.busy {
		content.WriteString(styles.hint.Render("Signing in...") + "\n")
	}

	content.WriteString(styles.help.Render("Enter → next field | Tab → switch field | Ctrl+C/Esc → quit"))

	return content.String()
}

func (m *model) renderResultView() string {
	var content strings.Builder

	styles := m.styles
	user := m.session.User

	content.WriteString(styles.success.Render(fmt.Sprintf("Signed in as %s (%s)", user.Username, user.Role)))
	content.WriteString("\n\n")
	content.WriteString(lipgloss.JoinVertical(lipgloss.Left,
		styles.focused2.Render("Session token:"), styles.token.Render(m.session.Token)))
	content.WriteString("\n\n")

	hint := "Select the token to copy it (or Ctrl+Shift+C)"
	if m.canCopy {
		hint = "Press C to copy (or select and Ctrl+Shift+C)"
	}

	hintSection := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.hint.Render(hint),
		styles.help.Render("Enter/Ctrl+C/Esc → quit"),
	)

	if m.copyMessage != "" {
		messageStyle := styles.success
		if strings.HasPrefix(m.copyMessage, "Failed") {
			messageStyle = styles.error
		}

		hintSection = lipgloss.JoinVertical(lipgloss.Left, hintSection, messageStyle.Render(m.copyMessage))
	}

	content.WriteString(hintSection)

	return content.String()
}

// RunInteractive runs the login TUI and returns the session once the user quits.
func RunInteractive(ctx context.Context, login LoginFunc, username string) (*models.Session, error) {
	p := tea.NewProgram(initialModel(ctx, login, username), tea.WithAltScreen(), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(*model)
	if !ok || m.session == nil {
		return nil, errLoginAborted
	}

	return m.session, nil
}

// IsInputFromTerminal determines if input is coming from a terminal or being piped/redirected.
func IsInputFromTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// SubcommandHandler defines the interface for parsing subcommand flags.
type SubcommandHandler interface {
	Parse(args []string, cfg *CmdConfig) error
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	return fs
}

// LoginHandler handles flags for the login subcommand.
type LoginHandler struct{}

// Parse processes the command-line arguments for the login subcommand.
func (LoginHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet("login")
	username := fs.String("user", cfg.Username, "staff username")
	password := fs.String("password", "", "password (prompted in the TUI when omitted)")
	nonInteractive := fs.Bool("non-interactive", false, "never start the TUI")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing login flags: %w", err)
	}

	cfg.Username = *username
	if *password != "" {
		cfg.Password = *password
	}

	cfg.NonInteractive = *nonInteractive

	return nil
}

// PageHandler handles the namespace flags shared by list, create, update, delete and export.
type PageHandler struct {
	Name       string
	NeedID     bool
	NeedData   bool
	NeedOutput bool
}

// Parse processes the command-line arguments for a page subcommand.
func (h PageHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(h.Name)
	ns := fs.String("ns", "", "namespace, e.g. tvChannels or rooms")
	id := fs.Int64("id", 0, "record id")
	data := fs.String("data", "", "record as JSON, or @file")
	output := fs.String("o", "", "output file")
	yes := fs.Bool("yes", false, "do not ask for confirmation")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing %s flags: %w", h.Name, err)
	}

	cfg.Namespace = *ns
	cfg.ID = *id
	cfg.Data = *data
	cfg.Output = *output
	cfg.Yes = *yes

	switch {
	case cfg.Namespace == "":
		return errNamespaceRequired
	case h.NeedID && cfg.ID <= 0:
		return errIDRequired
	case h.NeedData && cfg.Data == "":
		return errDataRequired
	case h.NeedOutput && cfg.Output == "":
		return errOutputRequired
	}

	return nil
}

// PairHandler handles flags for the pair subcommand.
type PairHandler struct{}

// Parse processes the command-line arguments for the pair subcommand.
func (PairHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet("pair")
	code := fs.String("code", "", "pairing code shown on the TV")
	room := fs.String("room", "", "room number")
	hotel := fs.Int64("hotel", 0, "hotel id (defaults to the configured hotel)")
	name := fs.String("name", "", "device name")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing pair flags: %w", err)
	}

	cfg.PairingCode = strings.TrimSpace(*code)
	cfg.RoomNumber = *room
	cfg.HotelID = *hotel
	cfg.DeviceName = *name

	if cfg.PairingCode == "" || cfg.RoomNumber == "" {
		return errPairArgsRequired
	}

	return nil
}

// DeviceCommandHandler handles flags for the command and volume subcommands.
type DeviceCommandHandler struct {
	Name string
}

// Parse processes the command-line arguments for a device control subcommand.
func (h DeviceCommandHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet(h.Name)
	device := fs.String("device", "", "device id")
	command := fs.String("cmd", "", "power_off, restart, volume_up, volume_down, mute, unmute or set_volume")
	value := fs.Int("value", -1, "volume for set_volume and volume")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing %s flags: %w", h.Name, err)
	}

	cfg.DeviceID = *device
	cfg.Command = *command
	cfg.Value = *value
	cfg.HasValue = *value >= 0

	switch {
	case cfg.DeviceID == "":
		return errDeviceRequired
	case h.Name == subVolume && !cfg.HasValue:
		return errVolumeRequired
	case h.Name == subCommand && cfg.Command == "":
		return errCommandRequired
	}

	return nil
}

// RequestStatusHandler handles flags for the request-status subcommand.
type RequestStatusHandler struct{}

// Parse processes the command-line arguments for the request-status subcommand.
func (RequestStatusHandler) Parse(args []string, cfg *CmdConfig) error {
	fs := newFlagSet("request-status")
	id := fs.Int64("id", 0, "service request id")
	status := fs.String("status", "", "pending, in_progress, completed or cancelled")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing request-status flags: %w", err)
	}

	cfg.ID = *id
	cfg.Status = *status

	if cfg.ID <= 0 || cfg.Status == "" {
		return errStatusArgsRequired
	}

	return nil
}

// WatchHandler handles flags for the watch subcommand.
type WatchHandler struct{}

// Parse processes the command-line arguments for the watch subcommand.
func (WatchHandler) Parse(args []string, _ *CmdConfig) error {
	fs := newFlagSet("watch")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing watch flags: %w", err)
	}

	return nil
}

// Subcommand names.
const (
	subLogin         = "login"
	subList          = "list"
	subCreate        = "create"
	subUpdate        = "update"
	subDelete        = "delete"
	subExport        = "export"
	subPair          = "pair"
	subCommand       = "command"
	subVolume        = "volume"
	subRequestStatus = "request-status"
	subWatch         = "watch"
)

func subcommands() map[string]SubcommandHandler {
	return map[string]SubcommandHandler{
		subLogin:         LoginHandler{},
		subList:          PageHandler{Name: subList},
		subCreate:        PageHandler{Name: subCreate, NeedData: true},
		subUpdate:        PageHandler{Name: subUpdate, NeedID: true, NeedData: true},
		subDelete:        PageHandler{Name: subDelete, NeedID: true},
		subExport:        PageHandler{Name: subExport, NeedOutput: true},
		subPair:          PairHandler{},
		subCommand:       DeviceCommandHandler{Name: subCommand},
		subVolume:        DeviceCommandHandler{Name: subVolume},
		subRequestStatus: RequestStatusHandler{},
		subWatch:         WatchHandler{},
	}
}

// ParseArgs parses the global flags and the subcommand with its flags.
func ParseArgs(args []string) (*CmdConfig, error) {
	fs := newFlagSet("dashboard")
	help := fs.Bool("help", false, "show help message")
	configFile := fs.String("config", "/etc/hoteltv/dashboard.json", "path to dashboard config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := &CmdConfig{
		Help:       *help,
		ConfigFile: *configFile,
		Args:       fs.Args(),
	}

	if cfg.Help {
		return cfg, nil
	}

	if len(cfg.Args) == 0 {
		return cfg, errNoSubcommand
	}

	cfg.SubCmd = cfg.Args[0]

	handler, exists := subcommands()[cfg.SubCmd]
	if !exists {
		return cfg, fmt.Errorf("%w: %s", errUnknownSubcommand, cfg.SubCmd)
	}

	if err := handler.Parse(cfg.Args[1:], cfg); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cfg.Help = true

			return cfg, nil
		}

		return cfg, err
	}

	return cfg, nil
}

// ParseFlags parses os.Args.
func ParseFlags() (*CmdConfig, error) {
	return ParseArgs(os.Args[1:])
}
