package service

import (
	"context"
	"log/slog"
	"strings"

	"eventadmin/internal/api"
)

// PublicService backs the visitor-facing flows: the booking form, the
// contact form and the public gallery. None of them need a session.
type PublicService struct {
	client   *api.Client
	validate *payloadValidator
}

func NewPublicService(client *api.Client) *PublicService {
	return &PublicService{client: client, validate: newPayloadValidator()}
}

// SubmitBooking sends a booking request. New bookings start as pending.
func (p *PublicService) SubmitBooking(ctx context.Context, req api.BookingRequest) (api.Booking, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := p.validate.Struct(req); err != nil {
		return api.Booking{}, err
	}
	b, err := p.client.Bookings.Create(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "booking submission failed", "error", err)
		return api.Booking{}, NewError(statusOf(err), CodeRequestFailed,
			MessageOr(err, "Failed to submit booking. Please try again."))
	}
	slog.InfoContext(ctx, "booking submitted", "booking_id", b.ID, "event_type", b.EventType)
	return b, nil
}

// SendMessage posts the contact form.
func (p *PublicService) SendMessage(ctx context.Context, req api.MessageRequest) (api.Message, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := p.validate.Struct(req); err != nil {
		return api.Message{}, err
	}
	m, err := p.client.Messages.Create(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "contact message failed", "error", err)
		return api.Message{}, NewError(statusOf(err), CodeRequestFailed,
			MessageOr(err, "Failed to send message. Please try again."))
	}
	slog.InfoContext(ctx, "contact message sent", "message_id", m.ID)
	return m, nil
}

// Gallery fetches every image and filters by category locally; an empty
// category keeps all of them. Image URLs come back absolute.
func (p *PublicService) Gallery(ctx context.Context, category api.Category) ([]api.GalleryImage, error) {
	if category != "" && !category.Valid() {
		return nil, validationError("Invalid category")
	}
	all, err := p.client.Gallery.List(ctx, "")
	if err != nil {
		slog.WarnContext(ctx, "public gallery fetch failed", "error", err)
		return nil, requestFailed(err, msgLoadGallery)
	}
	out := make([]api.GalleryImage, 0, len(all))
	for _, img := range all {
		if category != "" && img.Category != category {
			continue
		}
		img.ImageURL = api.ResolveImageURL(p.client.Origin(), img.ImageURL)
		out = append(out, img)
	}
	return out, nil
}
