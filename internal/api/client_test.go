package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventadmin/internal/api"
	"eventadmin/internal/apitest"
	"eventadmin/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestAuth_LoginReturnsToken(t *testing.T) {
	srv := apitest.New(t)
	c := api.NewClient(srv.URL, nil, api.Options{})

	tok, err := c.Auth.Login(context.Background(), auth.Credentials{Email: apitest.AdminEmail, Password: apitest.AdminPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, tok)

	_, ok := auth.TokenExpiry(tok)
	assert.True(t, ok, "fake service issues JWTs with exp")
}

func TestAuth_LoginRejectedCarriesServiceMessage(t *testing.T) {
	srv := apitest.New(t)
	c := api.NewClient(srv.URL, nil, api.Options{})

	_, err := c.Auth.Login(context.Background(), auth.Credentials{Email: apitest.AdminEmail, Password: "wrong"})
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", api.ServiceMessage(err))
}

func TestAuth_VerifySendsBearerToken(t *testing.T) {
	srv := apitest.New(t)

	require.NoError(t, api.NewClient(srv.URL, staticToken(srv.IssueToken(t)), api.Options{}).Auth.Verify(context.Background()))

	err := api.NewClient(srv.URL, staticToken("garbage"), api.Options{}).Auth.Verify(context.Background())
	assert.True(t, api.IsUnauthorized(err))

	err = api.NewClient(srv.URL, staticToken(""), api.Options{}).Auth.Verify(context.Background())
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, "No token provided", api.ServiceMessage(err))
}

func TestRequests_CarryRequestIDAndAuthHeader(t *testing.T) {
	var gotAuth, gotRequestID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	_, err := api.NewClient(ts.URL, staticToken("abc"), api.Options{}).Bookings.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Len(t, gotRequestID, 36)
}

func TestRequests_UniqueRequestIDsReachService(t *testing.T) {
	srv := apitest.New(t)
	c := api.NewClient(srv.URL, staticToken(srv.IssueToken(t)), api.Options{})
	ctx := context.Background()

	_, err := c.Gallery.List(ctx, "")
	require.NoError(t, err)
	_, err = c.Bookings.List(ctx)
	require.NoError(t, err)

	ids := srv.RequestIDs()
	require.Len(t, ids, 2)
	assert.Len(t, ids[0], 36)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestBookings_CreateListGetUpdateDelete(t *testing.T) {
	srv := apitest.New(t)
	ctx := context.Background()
	public := api.NewClient(srv.URL, nil, api.Options{})
	admin := api.NewClient(srv.URL, staticToken(srv.IssueToken(t)), api.Options{})

	created, err := public.Bookings.Create(ctx, api.BookingRequest{
		Name:       "Ada",
		Email:      "ada@example.com",
		Phone:      "555-0100",
		EventType:  "wedding",
		EventDate:  api.NewDate(time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)),
		GuestCount: 120,
		Venue:      "Garden Hall",
		Budget:     "10000-20000",
	})
	require.NoError(t, err)
	assert.Equal(t, api.BookingPending, created.Status)

	_, err = public.Bookings.List(ctx)
	assert.True(t, api.IsUnauthorized(err), "listing bookings needs a token")

	list, err := admin.Bookings.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	require.NoError(t, admin.Bookings.UpdateStatus(ctx, created.ID, api.BookingConfirmed))
	got, err := admin.Bookings.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, api.BookingConfirmed, got.Status)

	require.NoError(t, admin.Bookings.Delete(ctx, created.ID))
	list, err = admin.Bookings.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = admin.Bookings.Delete(ctx, created.ID)
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Booking not found", apiErr.Message)
}

func TestBookings_CreateRejectedUsesServiceMessage(t *testing.T) {
	srv := apitest.New(t)
	_, err := api.NewClient(srv.URL, nil, api.Options{}).Bookings.Create(context.Background(), api.BookingRequest{Name: "Ada"})
	require.Error(t, err)
	assert.Equal(t, "email is required", api.ServiceMessage(err))
}

func TestMessages_MarkReadIsIdempotent(t *testing.T) {
	srv := apitest.New(t)
	ctx := context.Background()
	c := api.NewClient(srv.URL, staticToken(srv.IssueToken(t)), api.Options{})

	m := srv.SeedMessage(api.Message{Name: "Bo", Email: "bo@example.com", Subject: "Hi", Message: "Quote?"})

	require.NoError(t, c.Messages.MarkRead(ctx, m.ID))
	require.NoError(t, c.Messages.MarkRead(ctx, m.ID))

	list, err := c.Messages.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
}

func TestGallery_UploadThenListRoundTrip(t *testing.T) {
	srv := apitest.New(t)
	ctx := context.Background()
	c := api.NewClient(srv.URL, staticToken(srv.IssueToken(t)), api.Options{})

	img, err := c.Gallery.Upload(ctx, api.UploadRequest{
		Title:       "Beach vows",
		Description: "Sunset ceremony",
		Category:    api.CategoryWedding,
		FileName:    "vows.jpg",
		Image:       []byte{0xff, 0xd8, 0xff},
	})
	require.NoError(t, err)

	list, err := c.Gallery.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Beach vows", list[0].Title)
	assert.Equal(t, api.CategoryWedding, list[0].Category)
	assert.Equal(t, img.ID, list[0].ID)

	data, ok := srv.Upload(list[0].ImageURL)
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)

	filtered, err := c.Gallery.List(ctx, api.CategoryBirthday)
	require.NoError(t, err)
	assert.Empty(t, filtered)
}

func TestGallery_UploadWithoutImageSendsNothing(t *testing.T) {
	srv := apitest.New(t)
	c := api.NewClient(srv.URL, staticToken(srv.IssueToken(t)), api.Options{})

	_, err := c.Gallery.Upload(context.Background(), api.UploadRequest{Title: "x", Category: api.CategoryOther})
	assert.ErrorIs(t, err, api.ErrEmptyImage)
	assert.Zero(t, srv.TotalHits())
}

func TestTransportFailureIsClassified(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := api.NewClient(url, nil, api.Options{HTTPClient: &http.Client{Timeout: time.Second}}).Gallery.List(context.Background(), "")
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.Empty(t, api.ServiceMessage(err))
}

func TestDecodeFailureIsClassified(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer ts.Close()

	_, err := api.NewClient(ts.URL, nil, api.Options{}).Gallery.List(context.Background(), "")
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, api.KindDecode, apiErr.Kind)
}

func TestResolveImageURL(t *testing.T) {
	tests := []struct {
		origin, in, want string
	}{
		{"http://localhost:5000", "/uploads/a.jpg", "http://localhost:5000/uploads/a.jpg"},
		{"http://localhost:5000/", "uploads/a.jpg", "http://localhost:5000/uploads/a.jpg"},
		{"http://localhost:5000", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"http://localhost:5000", "", ""},
	}
	for _, tt := range tests {
		if got := api.ResolveImageURL(tt.origin, tt.in); got != tt.want {
			t.Errorf("ResolveImageURL(%q, %q) = %q, want %q", tt.origin, tt.in, got, tt.want)
		}
	}
}
