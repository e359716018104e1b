package api

import (
	"context"
	"net/http"
	"net/url"
)

type MessageClient struct {
	http *httpClient
}

func (c *MessageClient) Create(ctx context.Context, body MessageRequest) (Message, error) {
	req, err := jsonRequest("messages.create", http.MethodPost, "/api/messages", body)
	if err != nil {
		return Message{}, err
	}
	var out Message
	if err := c.http.do(ctx, req, &out); err != nil {
		return Message{}, err
	}
	return out, nil
}

func (c *MessageClient) List(ctx context.Context) ([]Message, error) {
	var out []Message
	if err := c.http.do(ctx, request{op: "messages.list", method: http.MethodGet, path: "/api/messages"}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Message{}
	}
	return out, nil
}

func (c *MessageClient) MarkRead(ctx context.Context, id string) error {
	path := "/api/messages/" + url.PathEscape(id) + "/read"
	return c.http.do(ctx, request{op: "messages.markRead", method: http.MethodPatch, path: path}, nil)
}

func (c *MessageClient) Delete(ctx context.Context, id string) error {
	path := "/api/messages/" + url.PathEscape(id)
	return c.http.do(ctx, request{op: "messages.delete", method: http.MethodDelete, path: path}, nil)
}
