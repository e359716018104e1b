package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"eventadmin/internal/api"
	"eventadmin/internal/logging"
)

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })

var (
	errViewClosed = NewError(http.StatusConflict, "closed", "view is closed")
	errViewBusy   = NewError(http.StatusConflict, "busy", "another change is in progress")
)

// mutate runs a command against the service and, once it succeeds,
// invalidates and reloads the list. A failed reload leaves the view in its
// error state but does not turn the command into a failure.
func mutate[T any](ctx context.Context, c *collection[T], event, loadFailMsg string, cmd func(context.Context) error, onFail func(error) *Error, attrs ...slog.Attr) error {
	if !c.begin() {
		if c.Closed() {
			return errViewClosed
		}
		return errViewBusy
	}
	opCtx := logging.StartOperation(ctx, event)
	err := cmd(opCtx)
	c.end()
	if err != nil {
		logging.Audit(opCtx, event, logging.OutcomeFailure, append(attrs, slog.String("error", err.Error()))...)
		return onFail(err)
	}
	logging.Audit(opCtx, event, logging.OutcomeSuccess, attrs...)

	c.Invalidate()
	if err := c.Reload(ctx, loadFailMsg); err != nil {
		slog.WarnContext(ctx, "reload after change failed", "event", event, "error", err)
	}
	return nil
}

func fixed(message string) func(error) *Error {
	return func(err error) *Error { return requestFailed(err, message) }
}

// BookingsView is the admin bookings list.
type BookingsView struct {
	client  *api.Client
	confirm Confirmer
	list    *collection[api.Booking]
}

const msgLoadBookings = "Failed to load bookings"

func NewBookingsView(client *api.Client, confirm Confirmer) *BookingsView {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &BookingsView{
		client:  client,
		confirm: confirm,
		list:    newCollection(client.Bookings.List),
	}
}

func (v *BookingsView) Load(ctx context.Context) error {
	if err := v.list.Reload(ctx, msgLoadBookings); err != nil {
		return requestFailed(err, msgLoadBookings)
	}
	return nil
}

func (v *BookingsView) State() ListState[api.Booking] { return v.list.Snapshot() }

// Get fetches one booking directly; it does not touch the cached list.
func (v *BookingsView) Get(ctx context.Context, id string) (api.Booking, error) {
	b, err := v.client.Bookings.Get(ctx, id)
	if err != nil {
		return api.Booking{}, NewError(statusOf(err), CodeRequestFailed, MessageOr(err, "Failed to load booking"))
	}
	return b, nil
}

// UpdateStatus confirms or cancels a booking. Moving a booking back to
// pending is not an admin action.
func (v *BookingsView) UpdateStatus(ctx context.Context, id string, status api.BookingStatus) error {
	if status != api.BookingConfirmed && status != api.BookingCancelled {
		return validationError("status must be confirmed or cancelled")
	}
	return mutate(ctx, v.list, "booking.status", msgLoadBookings,
		func(ctx context.Context) error { return v.client.Bookings.UpdateStatus(ctx, id, status) },
		fixed("Failed to update booking status"),
		slog.String("booking_id", id), slog.String("status", string(status)),
	)
}

// Delete removes a booking after confirmation. It reports whether the
// operator approved.
func (v *BookingsView) Delete(ctx context.Context, id string) (bool, error) {
	if !v.confirm.Confirm(ctx, "Are you sure you want to delete this booking?") {
		return false, nil
	}
	err := mutate(ctx, v.list, "booking.delete", msgLoadBookings,
		func(ctx context.Context) error { return v.client.Bookings.Delete(ctx, id) },
		fixed("Failed to delete booking"),
		slog.String("booking_id", id),
	)
	return true, err
}

func (v *BookingsView) Close() { v.list.Close() }

// MessagesView is the admin inbox.
type MessagesView struct {
	client  *api.Client
	confirm Confirmer
	list    *collection[api.Message]
}

const msgLoadMessages = "Failed to load messages"

func NewMessagesView(client *api.Client, confirm Confirmer) *MessagesView {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &MessagesView{
		client:  client,
		confirm: confirm,
		list:    newCollection(client.Messages.List),
	}
}

func (v *MessagesView) Load(ctx context.Context) error {
	if err := v.list.Reload(ctx, msgLoadMessages); err != nil {
		return requestFailed(err, msgLoadMessages)
	}
	return nil
}

func (v *MessagesView) State() ListState[api.Message] { return v.list.Snapshot() }

// Unread counts unread messages in the current list.
func (v *MessagesView) Unread() int {
	n := 0
	for _, m := range v.list.Snapshot().Items {
		if !m.IsRead {
			n++
		}
	}
	return n
}

// MarkRead flags a message as read. Marking an already read message again
// is harmless.
func (v *MessagesView) MarkRead(ctx context.Context, id string) error {
	return mutate(ctx, v.list, "message.read", msgLoadMessages,
		func(ctx context.Context) error { return v.client.Messages.MarkRead(ctx, id) },
		fixed("Failed to mark message as read"),
		slog.String("message_id", id),
	)
}

func (v *MessagesView) Delete(ctx context.Context, id string) (bool, error) {
	if !v.confirm.Confirm(ctx, "Are you sure you want to delete this message?") {
		return false, nil
	}
	err := mutate(ctx, v.list, "message.delete", msgLoadMessages,
		func(ctx context.Context) error { return v.client.Messages.Delete(ctx, id) },
		fixed("Failed to delete message"),
		slog.String("message_id", id),
	)
	return true, err
}

func (v *MessagesView) Close() { v.list.Close() }

// GalleryView manages uploaded images.
type GalleryView struct {
	client  *api.Client
	confirm Confirmer
	list    *collection[api.GalleryImage]
}

const (
	msgLoadGallery   = "Failed to load gallery"
	MsgImageUploaded = "Image uploaded successfully!"
	MsgImageDeleted  = "Image deleted successfully!"
)

func NewGalleryView(client *api.Client, confirm Confirmer) *GalleryView {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &GalleryView{
		client:  client,
		confirm: confirm,
		list: newCollection(func(ctx context.Context) ([]api.GalleryImage, error) {
			return client.Gallery.List(ctx, "")
		}),
	}
}

func (v *GalleryView) Load(ctx context.Context) error {
	if err := v.list.Reload(ctx, msgLoadGallery); err != nil {
		return requestFailed(err, msgLoadGallery)
	}
	return nil
}

// State returns the gallery with image URLs resolved against the service.
func (v *GalleryView) State() ListState[api.GalleryImage] {
	st := v.list.Snapshot()
	for i := range st.Items {
		st.Items[i].ImageURL = api.ResolveImageURL(v.client.Origin(), st.Items[i].ImageURL)
	}
	return st
}

// Upload validates the form locally, sends it, and returns the
// acknowledgment to show. A form without an image never reaches the
// network and never marks the view busy.
func (v *GalleryView) Upload(ctx context.Context, form api.UploadRequest) (string, error) {
	if len(form.Image) == 0 {
		return "", validationError("Please select an image")
	}
	if form.Category == "" {
		form.Category = api.CategoryWedding
	}
	if !form.Category.Valid() {
		return "", validationError("Invalid category")
	}
	if form.Title == "" {
		return "", validationError("Title is required")
	}

	err := mutate(ctx, v.list, "gallery.upload", msgLoadGallery,
		func(ctx context.Context) error {
			_, err := v.client.Gallery.Upload(ctx, form)
			return err
		},
		func(err error) *Error { return NewError(statusOf(err), CodeRequestFailed, uploadMessage(err)) },
		slog.String("title", form.Title), slog.String("category", string(form.Category)),
	)
	if err != nil {
		return "", err
	}
	return MsgImageUploaded, nil
}

// uploadMessage prefers the service message, then the underlying transport
// error text.
func uploadMessage(err error) string {
	if msg := api.ServiceMessage(err); msg != "" {
		return msg
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Kind == api.KindTransport && apiErr.Err != nil {
		return apiErr.Err.Error()
	}
	return "Failed to upload image"
}

func (v *GalleryView) Delete(ctx context.Context, id string) (string, error) {
	if !v.confirm.Confirm(ctx, "Are you sure you want to delete this image?") {
		return "", nil
	}
	err := mutate(ctx, v.list, "gallery.delete", msgLoadGallery,
		func(ctx context.Context) error { return v.client.Gallery.Delete(ctx, id) },
		fixed("Failed to delete image"),
		slog.String("image_id", id),
	)
	if err != nil {
		return "", err
	}
	return MsgImageDeleted, nil
}

func (v *GalleryView) Close() { v.list.Close() }
