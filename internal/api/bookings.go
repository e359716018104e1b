package api

import (
	"context"
	"net/http"
	"net/url"
)

type BookingClient struct {
	http *httpClient
}

func (c *BookingClient) Create(ctx context.Context, body BookingRequest) (Booking, error) {
	req, err := jsonRequest("bookings.create", http.MethodPost, "/api/bookings", body)
	if err != nil {
		return Booking{}, err
	}
	var out Booking
	if err := c.http.do(ctx, req, &out); err != nil {
		return Booking{}, err
	}
	return out, nil
}

func (c *BookingClient) List(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := c.http.do(ctx, request{op: "bookings.list", method: http.MethodGet, path: "/api/bookings"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Booking{}
	}
	return out, nil
}

func (c *BookingClient) Get(ctx context.Context, id string) (Booking, error) {
	path := "/api/bookings/" + url.PathEscape(id)
	var out Booking
	if err := c.http.do(ctx, request{op: "bookings.get", method: http.MethodGet, path: path}, &out); err != nil {
		return Booking{}, err
	}
	return out, nil
}

func (c *BookingClient) UpdateStatus(ctx context.Context, id string, status BookingStatus) error {
	path := "/api/bookings/" + url.PathEscape(id) + "/status"
	req, err := jsonRequest("bookings.updateStatus", http.MethodPatch, path, map[string]BookingStatus{"status": status})
	if err != nil {
		return err
	}
	return c.http.do(ctx, req, nil)
}

func (c *BookingClient) Delete(ctx context.Context, id string) error {
	path := "/api/bookings/" + url.PathEscape(id)
	return c.http.do(ctx, request{op: "bookings.delete", method: http.MethodDelete, path: path}, nil)
}
