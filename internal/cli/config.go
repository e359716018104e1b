package cli

import (
	"fmt"
	"strings"

	"eventadmin/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change console settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:         "show",
			Short:       "Print the effective configuration",
			Args:        cobra.NoArgs,
			Annotations: map[string]string{skipStart: "config"},
			RunE: func(cmd *cobra.Command, _ []string) error {
				shown := *a.cfg
				if shown.Redis.Password != "" {
					shown.Redis.Password = "********"
				}
				data, err := yaml.Marshal(&shown)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "# %s\n%s", a.cfgMgr.Path(), data)
				return nil
			},
		},
		&cobra.Command{
			Use:         "set-api-url <url>",
			Short:       "Point the console at another service",
			Args:        cobra.ExactArgs(1),
			Annotations: map[string]string{skipStart: "config"},
			RunE: func(cmd *cobra.Command, args []string) error {
				url := strings.TrimRight(strings.TrimSpace(args[0]), "/")
				err := a.cfgMgr.Update(func(c *config.Config) error {
					c.API.BaseURL = url
					return nil
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "API URL set to %s\n", url)
				return nil
			},
		},
		&cobra.Command{
			Use:         "set-session-store <file|redis|memory>",
			Short:       "Choose where the session token is kept",
			Args:        cobra.ExactArgs(1),
			Annotations: map[string]string{skipStart: "config"},
			RunE: func(cmd *cobra.Command, args []string) error {
				store := strings.ToLower(strings.TrimSpace(args[0]))
				err := a.cfgMgr.Update(func(c *config.Config) error {
					c.Session.Store = store
					return nil
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Session store set to %s\n", store)
				return nil
			},
		},
	)
	return cmd
}
