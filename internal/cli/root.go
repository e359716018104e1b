// Package cli is the eventadmin command-line console.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"eventadmin/internal/api"
	"eventadmin/internal/auth"
	"eventadmin/internal/config"
	"eventadmin/internal/logging"
	"eventadmin/internal/service"
	"eventadmin/internal/service/admin"
	"eventadmin/internal/storage"

	"github.com/spf13/cobra"
)

// skipStart marks commands that run without restoring the admin session.
// "config" also skips opening session storage; "public" and "local" open it
// but never contact the service on startup.
const skipStart = "eventadmin/skip-start"

// Options wires the console to its streams. Zero values use the process
// stdio.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// app is the state shared by one console invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	yes        bool

	cfgMgr     *config.Manager
	cfg        *config.Config
	closeStore func() error
	session    *auth.Session
	client     *api.Client
	sessions   *service.SessionService
	stats      *service.StatsService
	shell      *admin.Shell
}

// newRoot builds the command tree around a fresh app.
func newRoot(opts Options) (*cobra.Command, *app) {
	a := &app{in: opts.In, out: opts.Out, errOut: opts.Err}
	if a.in == nil {
		a.in = os.Stdin
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.errOut == nil {
		a.errOut = os.Stderr
	}

	root := &cobra.Command{
		Use:           "eventadmin",
		Short:         "Admin console for the event booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $CONFIG_PATH or the user config dir)")

	root.AddCommand(
		a.loginCommand(),
		a.logoutCommand(),
		a.statusCommand(),
		a.statsCommand(),
		a.bookingsCommand(),
		a.messagesCommand(),
		a.galleryCommand(),
		a.bookCommand(),
		a.contactCommand(),
		a.configCommand(),
	)
	return root, a
}

// Execute runs the console and prints a failure to the error stream.
func Execute(ctx context.Context, args []string, opts Options) int {
	cmd, a := newRoot(opts)
	defer func() {
		if err := a.teardown(); err != nil {
			slog.Warn("failed to close session store", "error", err)
		}
	}()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", displayError(err))
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		return err
	}
	a.cfgMgr = mgr
	a.cfg = mgr.Get()
	logging.Init(logging.Options{Level: a.cfg.Log.Level, Format: a.cfg.Log.Format, Output: a.errOut})

	if cmd.Annotations[skipStart] == "config" {
		return nil
	}

	store, closeStore, err := storage.Open(a.cfg)
	if err != nil {
		return err
	}
	a.closeStore = closeStore
	a.session = auth.NewSession(store, a.cfg.Session.Key)
	a.client = api.NewClient(a.cfg.API.BaseURL, a.session, api.Options{
		HTTPClient: &http.Client{Timeout: a.cfg.API.Timeout},
	})
	a.sessions = service.NewSessionService(a.session, a.client)
	a.stats = service.NewStatsService(a.client)
	a.shell = admin.New(a.sessions, a.stats)

	if cmd.Annotations[skipStart] != "" {
		return nil
	}
	view := a.shell.Start(cmd.Context())
	slog.Debug("console started", "state", view.State.String(), "api", a.cfg.API.BaseURL)
	return nil
}

func (a *app) teardown() error {
	if a.closeStore == nil {
		return nil
	}
	closeStore := a.closeStore
	a.closeStore = nil
	return closeStore()
}

// enter gates admin commands on an authenticated session and switches the
// shell to the command's tab.
func (a *app) enter(tab admin.Tab) error {
	if err := a.shell.SelectTab(tab); err != nil {
		if errors.Is(err, admin.ErrNotAuthenticated) {
			return errors.New("not logged in; run `eventadmin login` first")
		}
		return err
	}
	return nil
}

func (a *app) confirmer() service.Confirmer {
	if a.yes {
		return service.AlwaysConfirm
	}
	return newPromptConfirmer(a.in, a.out)
}

func displayError(err error) string {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return err.Error()
}
