package cli

import (
	"fmt"
	"time"

	"eventadmin/internal/auth"
	"eventadmin/internal/service/admin"

	"github.com/spf13/cobra"
)

func (a *app) loginCommand() *cobra.Command {
	var creds auth.Credentials
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as the admin and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.shell.View().State == admin.StateAuthenticated {
				fmt.Fprintln(a.out, "Already logged in.")
				return nil
			}
			if creds.Password == "" {
				fmt.Fprint(a.out, "Password: ")
				pw, err := readLine(a.in)
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				creds.Password = pw
			}
			if err := a.shell.Login(cmd.Context(), creds); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged in.")
			return a.printDashboard()
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "admin email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "admin password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Forget the stored session token",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStart: "local"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.shell.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out.")
			return nil
		},
	}
}

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a verified session is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := a.shell.View()
			fmt.Fprintf(a.out, "API:     %s\n", a.cfg.API.BaseURL)
			fmt.Fprintf(a.out, "Session: %s\n", view.State)
			if view.State != admin.StateAuthenticated {
				return nil
			}
			if exp, ok := auth.TokenExpiry(a.session.Token()); ok {
				fmt.Fprintf(a.out, "Expires: %s (in %s)\n", exp.Local().Format(time.RFC3339), time.Until(exp).Round(time.Minute))
			}
			return nil
		},
	}
}

func (a *app) statsCommand() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.enter(admin.TabDashboard); err != nil {
				return err
			}
			if refresh {
				if _, err := a.shell.RefreshStats(cmd.Context()); err != nil {
					return err
				}
			}
			return a.printDashboard()
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "fetch the collections again before printing")
	return cmd
}

func (a *app) printDashboard() error {
	view := a.shell.View()
	tw := newTable(a.out, "METRIC", "COUNT")
	row(tw, "Total bookings", view.Stats.Bookings)
	row(tw, "Pending bookings", view.Stats.PendingBookings)
	row(tw, "Unread messages", view.UnreadBadge)
	row(tw, "Gallery images", view.Stats.Gallery)
	if a.stats.RefreshedAt().IsZero() {
		fmt.Fprintln(tw, "(counters unavailable)")
	}
	return tw.Flush()
}
