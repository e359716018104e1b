package cli

import (
	"fmt"

	"eventadmin/internal/api"
	"eventadmin/internal/service"
	"eventadmin/internal/service/admin"

	"github.com/spf13/cobra"
)

func (a *app) bookingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage booking requests",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all bookings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				view, err := a.bookingsView()
				if err != nil {
					return err
				}
				defer view.Close()
				if err := view.Load(cmd.Context()); err != nil {
					return err
				}
				return a.printBookings(view.State().Items)
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one booking",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				view, err := a.bookingsView()
				if err != nil {
					return err
				}
				defer view.Close()
				b, err := view.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				a.printBooking(b)
				return nil
			},
		},
		a.bookingStatusCommand("confirm", api.BookingConfirmed),
		a.bookingStatusCommand("cancel", api.BookingCancelled),
		a.deleteCommand("booking", func(cmd *cobra.Command, id string) (bool, string, error) {
			view, err := a.bookingsView()
			if err != nil {
				return false, "", err
			}
			defer view.Close()
			ok, err := view.Delete(cmd.Context(), id)
			return ok, "Booking deleted.", err
		}),
	)
	return cmd
}

func (a *app) bookingsView() (*service.BookingsView, error) {
	if err := a.enter(admin.TabBookings); err != nil {
		return nil, err
	}
	return service.NewBookingsView(a.client, a.confirmer()), nil
}

func (a *app) bookingStatusCommand(use string, status api.BookingStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: fmt.Sprintf("Mark a booking as %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.bookingsView()
			if err != nil {
				return err
			}
			defer view.Close()
			if err := view.UpdateStatus(cmd.Context(), args[0], status); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Booking %s is now %s.\n", args[0], status)
			st := view.State()
			if st.Err != "" {
				fmt.Fprintln(a.out, st.Err)
				return nil
			}
			return a.printBookings(st.Items)
		},
	}
}

// deleteCommand builds a "delete <id>" subcommand with a --yes flag.
func (a *app) deleteCommand(noun string, run func(cmd *cobra.Command, id string) (bool, string, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, done, err := run(cmd, args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(a.out, "Cancelled.")
				return nil
			}
			fmt.Fprintln(a.out, done)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&a.yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *app) printBookings(items []api.Booking) error {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No bookings found.")
		return nil
	}
	tw := newTable(a.out, "ID", "NAME", "EVENT", "DATE", "GUESTS", "VENUE", "STATUS")
	for _, b := range items {
		row(tw, b.ID, b.Name, b.EventType, formatDate(b.EventDate.Time), b.GuestCount, truncate(b.Venue, 24), b.Status)
	}
	return tw.Flush()
}

func (a *app) printBooking(b api.Booking) {
	tw := newTable(a.out, "FIELD", "VALUE")
	row(tw, "ID", b.ID)
	row(tw, "Name", b.Name)
	row(tw, "Email", b.Email)
	row(tw, "Phone", b.Phone)
	row(tw, "Event", b.EventType)
	row(tw, "Date", formatDate(b.EventDate.Time))
	row(tw, "Guests", b.GuestCount)
	row(tw, "Venue", b.Venue)
	row(tw, "Budget", b.Budget)
	row(tw, "Requirements", orDash(b.Requirements))
	row(tw, "Status", b.Status)
	if b.CreatedAt != nil {
		row(tw, "Created", formatDate(*b.CreatedAt))
	}
	_ = tw.Flush()
}
