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

package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/hoteltv/pkg/cms"
	"github.com/carverauto/hoteltv/pkg/lifecycle"
	"github.com/carverauto/hoteltv/pkg/logger"
	"github.com/carverauto/hoteltv/pkg/models"
	"github.com/carverauto/hoteltv/pkg/notify"
	"github.com/carverauto/hoteltv/pkg/realtime"
	"github.com/carverauto/hoteltv/pkg/rpc"
)

// App runs dashboard subcommands against one backend and hotel scope.
type App struct {
	Config    *models.DashboardConfig
	Client    *rpc.Client
	Dashboard *cms.Dashboard
	Logger    logger.Logger

	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader

	// Interactive enables the login TUI when credentials are missing.
	Interactive bool

	deps      cms.Deps
	assumeYes bool
	stdin     *bufio.Reader
}

func NewApp(cfg *models.DashboardConfig, log logger.Logger, out, errOut io.Writer, in io.Reader) *App {
	a := &App{
		Config: cfg,
		Client: rpc.NewClient(cfg.Backend, lifecycle.Component(log, "rpc")),
		Logger: log,
		Out:    out,
		ErrOut: errOut,
		In:     in,
		stdin:  bufio.NewReader(in),
	}

	a.deps = cms.Deps{
		Caller:    a.Client,
		Scope:     cms.Scope{HotelID: cfg.HotelID, SuperAdmin: cfg.SuperAdmin},
		Notifier:  NewToastPrinter(errOut),
		Confirmer: cms.ConfirmFunc(a.confirm),
		Logger:    lifecycle.Component(log, "cms"),
	}
	a.Dashboard = cms.NewDashboard(a.deps)

	return a
}

// Run executes one parsed subcommand.
func (a *App) Run(ctx context.Context, cmd *CmdConfig) error {
	a.assumeYes = cmd.Yes

	if cmd.SubCmd == subLogin {
		return a.runLogin(ctx, cmd)
	}

	if err := a.authenticate(ctx); err != nil {
		return err
	}

	switch cmd.SubCmd {
	case subList:
		return a.runList(ctx, cmd)
	case subCreate, subUpdate:
		return a.runSave(ctx, cmd)
	case subDelete:
		return a.runDelete(ctx, cmd)
	case subExport:
		return a.runExport(ctx, cmd)
	case subPair:
		return a.runPair(ctx, cmd)
	case subCommand:
		return a.runCommand(ctx, cmd)
	case subVolume:
		return a.Dashboard.DeviceControl.SetVolume(ctx, cmd.DeviceID, cmd.Value)
	case subRequestStatus:
		return cms.UpdateServiceRequestStatus(ctx, a.Dashboard.GuestServices, cmd.ID, cmd.Status)
	case subWatch:
		return a.runWatch(ctx)
	default:
		return fmt.Errorf("%w: %s", errUnknownSubcommand, cmd.SubCmd)
	}
}

// authenticate logs in with configured credentials unless a token is already set.
func (a *App) authenticate(ctx context.Context) error {
	if a.Client.Token() != "" || a.Config.Username == "" || a.Config.Password == "" {
		return nil
	}

	_, err := a.login(ctx, models.LoginRequest{Username: a.Config.Username, Password: a.Config.Password})

	return err
}

func (a *App) login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	return cms.Login(ctx, a.deps, a.Client, req)
}

func (a *App) runLogin(ctx context.Context, cmd *CmdConfig) error {
	username := cmd.Username
	if username == "" {
		username = a.Config.Username
	}

	password := cmd.Password
	if password == "" && username == a.Config.Username {
		password = a.Config.Password
	}

	if username != "" && password != "" {
		session, err := a.login(ctx, models.LoginRequest{Username: username, Password: password})
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(a.Out, session.Token)

		return err
	}

	if cmd.NonInteractive || !a.Interactive {
		return errCredentials
	}

	session, err := RunInteractive(ctx, a.login, username)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.Out, session.Token)

	return err
}

func (a *App) page(name string) (cms.Handle, error) {
	page, ok := a.Dashboard.Page(cms.Namespace(name))
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownNamespace, name)
	}

	return page, nil
}

func (a *App) runList(ctx context.Context, cmd *CmdConfig) error {
	page, err := a.page(cmd.Namespace)
	if err != nil {
		return err
	}

	if err := page.Refresh(ctx); err != nil {
		return err
	}

	return a.printItems(page)
}

func (a *App) printItems(page cms.Handle) error {
	data, err := page.ItemsJSON()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}

	buf.WriteByte('\n')

	_, err = a.Out.Write(buf.Bytes())

	return err
}

func (a *App) runSave(ctx context.Context, cmd *CmdConfig) error {
	page, err := a.page(cmd.Namespace)
	if err != nil {
		return err
	}

	data, err := a.readData(cmd.Data)
	if err != nil {
		return err
	}

	if cmd.SubCmd == subUpdate {
		if data, err = withID(data, cmd.ID); err != nil {
			return err
		}
	}

	if err := page.SubmitJSON(ctx, data); err != nil {
		return err
	}

	return a.printItems(page)
}

// readData reads inline JSON, @file, or - for stdin.
func (a *App) readData(arg string) ([]byte, error) {
	switch {
	case arg == "-":
		return io.ReadAll(a.stdin)
	case strings.HasPrefix(arg, "@"):
		data, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}

		return data, nil
	default:
		return []byte(arg), nil
	}
}

func withID(data []byte, id int64) ([]byte, error) {
	var fields map[string]json.RawMessage

	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", cms.ErrValidation, err)
	}

	raw, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}

	fields["id"] = raw

	return json.Marshal(fields)
}

func (a *App) runDelete(ctx context.Context, cmd *CmdConfig) error {
	page, err := a.page(cmd.Namespace)
	if err != nil {
		return err
	}

	deleted, err := page.Delete(ctx, cmd.ID)
	if err != nil {
		return err
	}

	if !deleted {
		return errDeleteDeclined
	}

	return nil
}

func (a *App) runExport(ctx context.Context, cmd *CmdConfig) error {
	page, err := a.page(cmd.Namespace)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(cmd.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, defaultFilePerms)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cmd.Output, err)
	}

	if err := page.Export(ctx, f); err != nil {
		_ = f.Close()
		_ = os.Remove(cmd.Output)

		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	_, err = fmt.Fprintf(a.ErrOut, "Exported %s to %s\n", page.Label(), cmd.Output)

	return err
}

func (a *App) runPair(ctx context.Context, cmd *CmdConfig) error {
	device, err := a.Dashboard.DeviceControl.Pair(ctx, models.PairDeviceRequest{
		PairingCode: cmd.PairingCode,
		HotelID:     cmd.HotelID,
		RoomNumber:  cmd.RoomNumber,
		DeviceName:  cmd.DeviceName,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(device, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.Out, string(out))

	return err
}

func (a *App) runCommand(ctx context.Context, cmd *CmdConfig) error {
	req := models.DeviceCommandRequest{
		DeviceID: cmd.DeviceID,
		Command:  models.CommandType(cmd.Command),
	}

	if cmd.HasValue {
		v := cmd.Value
		req.Value = &v
	}

	return a.Dashboard.DeviceControl.SendCommand(ctx, req)
}

// runWatch streams new service requests until ctx ends.
func (a *App) runWatch(ctx context.Context) error {
	id := a.Config.Username
	if id == "" {
		id = "dashboard"
	}

	page := a.Dashboard.GuestServices

	ch, err := realtime.New(a.Config.Backend.BaseURL,
		realtime.Params{Scope: realtime.ScopeClient, HotelID: a.Config.HotelID, ID: id},
		lifecycle.Component(a.Logger, "push"),
		realtime.OnConnectionChange(func(up bool) {
			if up {
				notify.Info(a.deps.Notifier, "Live updates connected", "")
			} else {
				notify.Warning(a.deps.Notifier, "Live updates disconnected", "reconnecting")
			}
		}))
	if err != nil {
		return err
	}

	cms.WatchServiceRequests(ch, page)

	if _, err := page.Load(ctx); err != nil {
		a.Logger.Warn().Err(err).Msg("Initial service request load failed")
	} else {
		_, _ = fmt.Fprintf(a.ErrOut, "%d open service requests\n", countOpen(page.Items()))
	}

	ch.Start(ctx)
	<-ctx.Done()

	return ch.Close()
}

func countOpen(items []models.ServiceRequest) int {
	n := 0

	for _, r := range items {
		if r.Status == "pending" || r.Status == "in_progress" {
			n++
		}
	}

	return n
}

func (a *App) confirm(_ context.Context, prompt string) bool {
	if a.assumeYes {
		return true
	}

	if _, err := fmt.Fprintf(a.ErrOut, "%s [y/N] ", prompt); err != nil {
		return false
	}

	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// ToastPrinter writes toasts to a terminal, one colored line each.
type ToastPrinter struct {
	mu     sync.Mutex
	w      io.Writer
	styles logStyles
}

var _ notify.Notifier = (*ToastPrinter)(nil)

func NewToastPrinter(w io.Writer) *ToastPrinter {
	return &ToastPrinter{
		w: w,
		styles: logStyles{
			info:    lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan)),
			success: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaGreen)),
			warning: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaOrange)),
			error:   lipgloss.NewStyle().Foreground(lipgloss.Color(draculaRed)).Bold(true),
		},
	}
}

func (p *ToastPrinter) Notify(t notify.Toast) {
	style, mark := p.styles.info, "i"

	switch t.Kind {
	case notify.KindSuccess:
		style, mark = p.styles.success, "✔"
	case notify.KindWarning:
		style, mark = p.styles.warning, "!"
	case notify.KindError:
		style, mark = p.styles.error, "✘"
	case notify.KindInfo:
	}

	line := mark + " " + t.Title
	if t.Message != "" {
		line += ": " + t.Message
	}

	if t.Action != "" {
		line += " [" + t.Action + "]"
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintln(p.w, style.Render(line))
}
