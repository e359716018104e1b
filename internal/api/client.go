package api

import (
	"net/http"
	"net/url"
	"strings"
)

// Client groups the remote service's resource APIs. Every request carries
// the bearer token of the session passed to NewClient.
type Client struct {
	Auth     *AuthClient
	Bookings *BookingClient
	Messages *MessageClient
	Gallery  *GalleryClient

	origin string
}

// Options tweaks the underlying transport; the zero value is usable.
type Options struct {
	HTTPClient *http.Client
}

// NewClient builds a client for the service at baseURL (scheme and host, for
// example http://localhost:5000). tokens is usually an *auth.Session.
func NewClient(baseURL string, tokens TokenSource, opts Options) *Client {
	hc := newHTTPClient(baseURL, tokens, opts.HTTPClient)
	return &Client{
		Auth:     &AuthClient{http: hc},
		Bookings: &BookingClient{http: hc},
		Messages: &MessageClient{http: hc},
		Gallery:  &GalleryClient{http: hc},
		origin:   hc.baseURL,
	}
}

// Origin is the service origin image paths are resolved against.
func (c *Client) Origin() string { return c.origin }

// ResolveImageURL turns a served image path into an absolute URL. Values
// that already carry a scheme are returned unchanged.
func ResolveImageURL(origin, imageURL string) string {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return ""
	}
	if u, err := url.Parse(imageURL); err == nil && u.IsAbs() {
		return imageURL
	}
	origin = strings.TrimRight(origin, "/")
	if !strings.HasPrefix(imageURL, "/") {
		imageURL = "/" + imageURL
	}
	return origin + imageURL
}
