package youtube

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	// People & Blogs
	defaultCategoryID = "22"
	defaultPrivacy    = "unlisted"
)

var defaultTags = []string{"AI", "Video", "Generated"}

// Client uploads videos to YouTube using a service account credential.
// The upload is a single synchronous Videos.Insert call; the Data API
// handles chunking and resumability internally.
type Client struct {
	service *yt.Service
}

type UploadRequest struct {
	FilePath    string
	Title       string
	Description string
	Tags        []string
	Privacy     string
	CategoryID  string
}

// NewClient builds a client from a service account key file, scoped to
// video uploads only. Extra options are passed through to the underlying
// service.
func NewClient(ctx context.Context, keyFile string, opts ...option.ClientOption) (*Client, error) {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(key, yt.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}

	opts = append([]option.ClientOption{option.WithHTTPClient(conf.Client(ctx))}, opts...)

	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &Client{service: service}, nil
}

// Upload performs the insert call and returns the id YouTube assigned to
// the video. Transport and authorization failures come back from the SDK
// unclassified.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (string, error) {
	f, err := os.Open(req.FilePath)
	if err != nil {
		return "", fmt.Errorf("open video file: %w", err)
	}
	defer func() { _ = f.Close() }()

	tags := req.Tags
	if len(tags) == 0 {
		tags = defaultTags
	}

	privacy := req.Privacy
	if privacy == "" {
		privacy = defaultPrivacy
	}

	categoryID := req.CategoryID
	if categoryID == "" {
		categoryID = defaultCategoryID
	}

	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       req.Title,
			Description: req.Description,
			Tags:        tags,
			CategoryId:  categoryID,
		},
		Status: &yt.VideoStatus{
			PrivacyStatus: privacy,
		},
	}

	resp, err := c.service.Videos.Insert([]string{"snippet", "status"}, video).
		Media(f).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	return resp.Id, nil
}

// WatchURL returns the public watch page for an uploaded video.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://youtube.com/watch?v=%s", videoID)
}

// ValidateKey checks that a service account key file exists and parses as
// JWT credentials without building a service.
func ValidateKey(keyFile string) error {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return fmt.Errorf("read service account key: %w", err)
	}

	if _, err := google.JWTConfigFromJSON(key, yt.YoutubeUploadScope); err != nil {
		return fmt.Errorf("parse service account key: %w", err)
	}

	return nil
}
