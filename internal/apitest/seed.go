package apitest

import (
	"time"

	"eventadmin/internal/api"
)

// SeedBooking stores b directly, assigning an id and defaulting status to
// pending. It returns the stored booking.
func (s *Server) SeedBooking(b api.Booking) api.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == "" {
		b.ID = s.newIDLocked()
	}
	if b.Status == "" {
		b.Status = api.BookingPending
	}
	if b.EventDate.IsZero() {
		b.EventDate = api.NewDate(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	}
	s.bookings = append(s.bookings, b)
	return b
}

// SeedMessage stores m directly and returns it.
func (s *Server) SeedMessage(m api.Message) api.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = s.newIDLocked()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.messages = append(s.messages, m)
	return m
}

// SeedImage stores img directly and returns it.
func (s *Server) SeedImage(img api.GalleryImage) api.GalleryImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img.ID == "" {
		img.ID = s.newIDLocked()
	}
	if img.Category == "" {
		img.Category = api.CategoryOther
	}
	if img.ImageURL == "" {
		img.ImageURL = "/uploads/" + img.ID + ".jpg"
	}
	s.gallery = append(s.gallery, img)
	return img
}

// Bookings returns a snapshot of the stored bookings.
func (s *Server) Bookings() []api.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Booking{}, s.bookings...)
}

// Messages returns a snapshot of the stored messages.
func (s *Server) Messages() []api.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Message{}, s.messages...)
}

// Gallery returns a snapshot of the stored gallery images.
func (s *Server) Gallery() []api.GalleryImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.GalleryImage{}, s.gallery...)
}

// Upload returns the bytes stored for an uploaded image path.
func (s *Server) Upload(imageURL string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.uploads[imageURL]
	return data, ok
}
