package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

// ErrEmptyImage is returned when an upload carries no image bytes.
var ErrEmptyImage = errors.New("image file is required")

type GalleryClient struct {
	http *httpClient
}

// List returns gallery images, optionally restricted to one category.
func (c *GalleryClient) List(ctx context.Context, category Category) ([]GalleryImage, error) {
	path := "/api/gallery"
	if category != "" {
		path += "?" + url.Values{"category": {string(category)}}.Encode()
	}
	var out []GalleryImage
	if err := c.http.do(ctx, request{op: "gallery.list", method: http.MethodGet, path: path}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []GalleryImage{}
	}
	return out, nil
}

// Upload sends the image and its metadata as multipart/form-data.
func (c *GalleryClient) Upload(ctx context.Context, up UploadRequest) (GalleryImage, error) {
	if len(up.Image) == 0 {
		return GalleryImage{}, ErrEmptyImage
	}
	fileName := up.FileName
	if fileName == "" {
		fileName = "image"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"title", up.Title},
		{"description", up.Description},
		{"category", string(up.Category)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return GalleryImage{}, &Error{Kind: KindTransport, Op: "gallery.upload", Err: err}
		}
	}
	part, err := w.CreateFormFile("image", fileName)
	if err != nil {
		return GalleryImage{}, &Error{Kind: KindTransport, Op: "gallery.upload", Err: err}
	}
	if _, err := part.Write(up.Image); err != nil {
		return GalleryImage{}, &Error{Kind: KindTransport, Op: "gallery.upload", Err: err}
	}
	if err := w.Close(); err != nil {
		return GalleryImage{}, &Error{Kind: KindTransport, Op: "gallery.upload", Err: fmt.Errorf("failed to close multipart body: %w", err)}
	}

	req := request{
		op:          "gallery.upload",
		method:      http.MethodPost,
		path:        "/api/gallery",
		body:        &buf,
		contentType: w.FormDataContentType(),
	}
	var out GalleryImage
	if err := c.http.do(ctx, req, &out); err != nil {
		return GalleryImage{}, err
	}
	return out, nil
}

func (c *GalleryClient) Delete(ctx context.Context, id string) error {
	path := "/api/gallery/" + url.PathEscape(id)
	return c.http.do(ctx, request{op: "gallery.delete", method: http.MethodDelete, path: path}, nil)
}
