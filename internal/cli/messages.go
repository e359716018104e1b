package cli

import (
	"fmt"

	"eventadmin/internal/api"
	"eventadmin/internal/service"
	"eventadmin/internal/service/admin"

	"github.com/spf13/cobra"
)

func (a *app) messagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read and manage contact messages",
	}

	var unreadOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List contact messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.messagesView()
			if err != nil {
				return err
			}
			defer view.Close()
			if err := view.Load(cmd.Context()); err != nil {
				return err
			}
			items := view.State().Items
			if unreadOnly {
				unread := items[:0]
				for _, m := range items {
					if !m.IsRead {
						unread = append(unread, m)
					}
				}
				items = unread
			}
			return a.printMessages(items, view.Unread())
		},
	}
	list.Flags().BoolVar(&unreadOnly, "unread", false, "only show unread messages")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "read <id>",
			Short: "Mark a message as read",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				view, err := a.messagesView()
				if err != nil {
					return err
				}
				defer view.Close()
				if err := view.MarkRead(cmd.Context(), args[0]); err != nil {
					return err
				}
				st := view.State()
				if st.Err != "" {
					fmt.Fprintf(a.out, "Message %s marked as read.\n%s\n", args[0], st.Err)
					return nil
				}
				for _, m := range st.Items {
					if m.ID == args[0] {
						a.printMessage(m)
					}
				}
				return nil
			},
		},
		a.deleteCommand("message", func(cmd *cobra.Command, id string) (bool, string, error) {
			view, err := a.messagesView()
			if err != nil {
				return false, "", err
			}
			defer view.Close()
			ok, err := view.Delete(cmd.Context(), id)
			return ok, "Message deleted.", err
		}),
	)
	return cmd
}

func (a *app) messagesView() (*service.MessagesView, error) {
	if err := a.enter(admin.TabMessages); err != nil {
		return nil, err
	}
	return service.NewMessagesView(a.client, a.confirmer()), nil
}

func (a *app) printMessages(items []api.Message, unread int) error {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No messages found.")
		return nil
	}
	tw := newTable(a.out, "ID", "", "FROM", "SUBJECT", "RECEIVED")
	for _, m := range items {
		marker := ""
		if !m.IsRead {
			marker = "*"
		}
		row(tw, m.ID, marker, fmt.Sprintf("%s <%s>", m.Name, m.Email), truncate(m.Subject, 40), formatDate(m.CreatedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d unread\n", unread)
	return nil
}

func (a *app) printMessage(m api.Message) {
	fmt.Fprintf(a.out, "From:    %s <%s>\n", m.Name, m.Email)
	fmt.Fprintf(a.out, "Subject: %s\n", m.Subject)
	fmt.Fprintf(a.out, "Date:    %s\n\n", formatDate(m.CreatedAt))
	fmt.Fprintln(a.out, m.Message)
}
