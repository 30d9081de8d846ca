package comments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrStatus reports a non-200 response from the comments API.
var ErrStatus = errors.New("comments: unexpected status")

// Config carries the per-post comment switches.
type Config struct {
	IsReadable bool
	IsWritable bool
}

// Thread is the response of the list endpoint.
type Thread struct {
	PostId string
	Config Config
	List   []Comment
}

// Comment is a published comment. Text holds rendered HTML.
type Comment struct {
	Id      string
	Visible bool
	Author  string
	When    string
	Text    string
}

// NewComment is the payload of the add endpoint.
type NewComment struct {
	PostId string
	Author string
	Text   string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides http.DefaultClient.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request issued by the client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Client calls the comments API rooted at a base URL.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
}

// NewClient returns a client for the API at base (e.g. "https://host/_").
func NewClient(base string, opts ...ClientOption) *Client {
	c := &Client{
		base: strings.TrimRight(strings.TrimSpace(base), "/"),
		http: http.DefaultClient,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// List fetches the thread for postID.
func (c *Client) List(ctx context.Context, postID string) (Thread, error) {
	var out Thread
	if err := c.post(ctx, "/list", map[string]string{"PostId": postID}, &out); err != nil {
		return Thread{}, err
	}
	return out, nil
}

// Add submits a comment and returns the stored record.
func (c *Client) Add(ctx context.Context, comment NewComment) (Comment, error) {
	var out Comment
	if err := c.post(ctx, "/add", comment, &out); err != nil {
		return Comment{}, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("comments: encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("comments: build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("comments: call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned %d", ErrStatus, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("comments: decode %s response: %w", path, err)
	}
	return nil
}
