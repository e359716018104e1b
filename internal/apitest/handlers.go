package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"eventadmin/internal/api"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxUploadSize = 10 << 20

func (s *Server) newIDLocked() string {
	s.nextID++
	return fmt.Sprintf("%024x", s.nextID)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	if !strings.EqualFold(strings.TrimSpace(body.Email), AdminEmail) ||
		bcrypt.CompareHashAndPassword(s.passwordHash, []byte(body.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	token, err := s.tokens.issue(AdminEmail)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"admin": map[string]string{"email": AdminEmail},
	})
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var req api.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	if missing := missingBookingField(req); missing != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": missing + " is required"})
		return
	}
	now := time.Now().UTC()
	s.mu.Lock()
	b := api.Booking{
		ID:           s.newIDLocked(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		EventType:    req.EventType,
		EventDate:    req.EventDate,
		GuestCount:   req.GuestCount,
		Venue:        req.Venue,
		Budget:       req.Budget,
		Requirements: req.Requirements,
		Status:       api.BookingPending,
		CreatedAt:    &now,
	}
	s.bookings = append(s.bookings, b)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, b)
}

func missingBookingField(req api.BookingRequest) string {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return "name"
	case strings.TrimSpace(req.Email) == "":
		return "email"
	case strings.TrimSpace(req.Phone) == "":
		return "phone"
	case strings.TrimSpace(req.EventType) == "":
		return "eventType"
	case req.EventDate.IsZero():
		return "eventDate"
	case req.GuestCount <= 0:
		return "guestCount"
	case strings.TrimSpace(req.Venue) == "":
		return "venue"
	case strings.TrimSpace(req.Budget) == "":
		return "budget"
	}
	return ""
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]api.Booking{}, s.bookings...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Booking not found"})
}

func (s *Server) updateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status api.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Status.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid status"})
		return
	}
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = body.Status
			writeJSON(w, http.StatusOK, s.bookings[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Booking not found"})
}

func (s *Server) deleteBooking(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Booking not found"})
}

func (s *Server) createMessage(w http.ResponseWriter, r *http.Request) {
	var req api.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "All fields are required"})
		return
	}
	s.mu.Lock()
	m := api.Message{
		ID:        s.newIDLocked(),
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	s.messages = append(s.messages, m)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := append([]api.Message{}, s.messages...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) markMessageRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].IsRead = true
			writeJSON(w, http.StatusOK, s.messages[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Message not found"})
}

func (s *Server) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Message not found"})
}

func (s *Server) listGallery(w http.ResponseWriter, r *http.Request) {
	category := api.Category(r.URL.Query().Get("category"))
	s.mu.Lock()
	out := make([]api.GalleryImage, 0, len(s.gallery))
	for _, img := range s.gallery {
		if category == "" || img.Category == category {
			out = append(out, img)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Please upload an image"})
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Please upload an image"})
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	category := api.Category(r.FormValue("category"))
	if title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Title is required"})
		return
	}
	if !category.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid category"})
		return
	}

	imageURL := "/uploads/" + uuid.NewString() + path.Ext(header.Filename)
	s.mu.Lock()
	img := api.GalleryImage{
		ID:          s.newIDLocked(),
		Title:       title,
		Description: r.FormValue("description"),
		Category:    category,
		ImageURL:    imageURL,
	}
	s.gallery = append(s.gallery, img)
	s.uploads[imageURL] = data
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, img)
}

func (s *Server) deleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.gallery {
		if s.gallery[i].ID == id {
			delete(s.uploads, s.gallery[i].ImageURL)
			s.gallery = append(s.gallery[:i], s.gallery[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Image deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Image not found"})
}
