package api

import (
	"strings"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type Category string

const (
	CategoryWedding    Category = "wedding"
	CategoryBirthday   Category = "birthday"
	CategoryCorporate  Category = "corporate"
	CategoryConference Category = "conference"
	CategoryOther      Category = "other"
)

// Categories lists gallery categories in display order.
var Categories = []Category{
	CategoryWedding,
	CategoryBirthday,
	CategoryCorporate,
	CategoryConference,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory normalizes user input into a Category.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	return c, c.Valid()
}

type Booking struct {
	ID           string        `json:"_id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	EventType    string        `json:"eventType"`
	EventDate    Date          `json:"eventDate"`
	GuestCount   GuestCount    `json:"guestCount"`
	Venue        string        `json:"venue"`
	Budget       string        `json:"budget"`
	Requirements string        `json:"requirements,omitempty"`
	Status       BookingStatus `json:"status"`
	CreatedAt    *time.Time    `json:"createdAt,omitempty"`
}

type Message struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

type GalleryImage struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	ImageURL    string   `json:"imageUrl"`
}

// BookingRequest is the public booking form payload.
type BookingRequest struct {
	Name         string     `json:"name" validate:"required"`
	Email        string     `json:"email" validate:"required,email"`
	Phone        string     `json:"phone" validate:"required"`
	EventType    string     `json:"eventType" validate:"required"`
	EventDate    Date       `json:"eventDate" validate:"required"`
	GuestCount   GuestCount `json:"guestCount" validate:"required,gt=0"`
	Venue        string     `json:"venue" validate:"required"`
	Budget       string     `json:"budget" validate:"required"`
	Requirements string     `json:"requirements,omitempty"`
}

// MessageRequest is the public contact form payload.
type MessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// UploadRequest carries the gallery upload form. Image must be non-empty.
type UploadRequest struct {
	Title       string
	Description string
	Category    Category
	FileName    string
	Image       []byte
}

// Stats are the dashboard counters derived from the three collections.
type Stats struct {
	Bookings        int `json:"bookings"`
	UnreadMessages  int `json:"unreadMessages"`
	Gallery         int `json:"gallery"`
	PendingBookings int `json:"pendingBookings"`
}

// ComputeStats reduces fetched collections into dashboard counters.
func ComputeStats(bookings []Booking, messages []Message, gallery []GalleryImage) Stats {
	stats := Stats{
		Bookings: len(bookings),
		Gallery:  len(gallery),
	}
	for _, b := range bookings {
		if b.Status == BookingPending {
			stats.PendingBookings++
		}
	}
	for _, m := range messages {
		if !m.IsRead {
			stats.UnreadMessages++
		}
	}
	return stats
}
