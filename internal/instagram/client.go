package instagram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	graphBaseURL      = "https://graph.facebook.com/v17.0"
	graphVideoBaseURL = "https://graph-video.facebook.com/v17.0"
	defaultTimeout    = 2 * time.Minute
)

// Client publishes videos to an Instagram professional account through the
// Meta Graph API. Publishing is a two step sequence: create a media
// container for a hosted video, then publish that container.
type Client struct {
	accountID   string
	accessToken string
	httpClient  *http.Client

	graphURL      string
	graphVideoURL string
}

type Config struct {
	AccountID   string
	AccessToken string
	Timeout     time.Duration
}

// Publication is the parsed response of a successful media_publish call.
type Publication struct {
	ID string `json:"id"`
}

type containerResponse struct {
	ID string `json:"id"`
}

// CreationError means the container creation step did not yield a container
// id. Body carries the raw Graph API response for diagnosis.
type CreationError struct {
	StatusCode int
	Body       string
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("instagram: create container failed (status %d): %s", e.StatusCode, e.Body)
}

// PublishError means the publish step returned a non-200 status after a
// container was created. Body carries the raw Graph API response.
type PublishError struct {
	StatusCode int
	Body       string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("instagram: publish container failed (status %d): %s", e.StatusCode, e.Body)
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		accountID:     cfg.AccountID,
		accessToken:   cfg.AccessToken,
		graphURL:      graphBaseURL,
		graphVideoURL: graphVideoBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Publish creates a media container for the video hosted at videoURL and
// publishes it. The container must be obtained before the publish endpoint
// is contacted; any failure aborts the whole operation.
func (c *Client) Publish(ctx context.Context, videoURL, caption string) (*Publication, error) {
	containerID, err := c.createContainer(ctx, videoURL, caption)
	if err != nil {
		return nil, err
	}

	return c.publishContainer(ctx, containerID)
}

func (c *Client) createContainer(ctx context.Context, videoURL, caption string) (string, error) {
	form := url.Values{}
	form.Set("video_url", videoURL)
	form.Set("caption", caption)
	form.Set("access_token", c.accessToken)

	endpoint := fmt.Sprintf("%s/%s/media", c.graphVideoURL, c.accountID)
	status, body, err := c.postForm(ctx, endpoint, form)
	if err != nil {
		return "", err
	}

	if status < 200 || status >= 300 {
		return "", &CreationError{StatusCode: status, Body: string(body)}
	}

	var container containerResponse
	if err := json.Unmarshal(body, &container); err != nil || container.ID == "" {
		return "", &CreationError{StatusCode: status, Body: string(body)}
	}

	return container.ID, nil
}

func (c *Client) publishContainer(ctx context.Context, containerID string) (*Publication, error) {
	form := url.Values{}
	form.Set("creation_id", containerID)
	form.Set("access_token", c.accessToken)

	endpoint := fmt.Sprintf("%s/%s/media_publish", c.graphURL, c.accountID)
	status, body, err := c.postForm(ctx, endpoint, form)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, &PublishError{StatusCode: status, Body: string(body)}
	}

	var pub Publication
	if err := json.Unmarshal(body, &pub); err != nil {
		return nil, fmt.Errorf("parse publish response: %w", err)
	}

	return &pub, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, body, nil
}
