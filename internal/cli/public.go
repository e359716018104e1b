package cli

import (
	"fmt"
	"time"

	"eventadmin/internal/api"
	"eventadmin/internal/service"

	"github.com/spf13/cobra"
)

func (a *app) bookCommand() *cobra.Command {
	var (
		req    api.BookingRequest
		date   string
		guests int
	)
	cmd := &cobra.Command{
		Use:         "book",
		Short:       "Submit a booking request as a visitor",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStart: "public"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date != "" {
				d, err := time.Parse(api.DateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
				}
				req.EventDate = api.NewDate(d)
			}
			req.GuestCount = api.GuestCount(guests)
			b, err := service.NewPublicService(a.client).SubmitBooking(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Booking request received (id %s, status %s). We will contact you soon.\n", b.ID, b.Status)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "full name")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&req.Phone, "phone", "", "phone number")
	f.StringVar(&req.EventType, "event-type", "", "event type (wedding, birthday, corporate, ...)")
	f.StringVar(&date, "date", "", "event date, YYYY-MM-DD")
	f.IntVar(&guests, "guests", 0, "expected number of guests")
	f.StringVar(&req.Venue, "venue", "", "venue")
	f.StringVar(&req.Budget, "budget", "", "budget range")
	f.StringVar(&req.Requirements, "requirements", "", "anything else we should know")
	return cmd
}

func (a *app) contactCommand() *cobra.Command {
	var req api.MessageRequest
	cmd := &cobra.Command{
		Use:         "contact",
		Short:       "Send a contact message as a visitor",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStart: "public"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := service.NewPublicService(a.client).SendMessage(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Message sent. Thank you for reaching out!")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "your name")
	f.StringVar(&req.Email, "email", "", "your email")
	f.StringVar(&req.Subject, "subject", "", "subject")
	f.StringVar(&req.Message, "message", "", "message body")
	return cmd
}
