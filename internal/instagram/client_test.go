package instagram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantTimeout time.Duration
	}{
		{
			name:        "defaultTimeout",
			cfg:         Config{AccountID: "178414", AccessToken: "token"},
			wantTimeout: defaultTimeout,
		},
		{
			name:        "customTimeout",
			cfg:         Config{AccountID: "178414", AccessToken: "token", Timeout: 30 * time.Second},
			wantTimeout: 30 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.cfg)

			if client.accountID != tt.cfg.AccountID {
				t.Errorf("accountID = %q, want %q", client.accountID, tt.cfg.AccountID)
			}
			if client.accessToken != tt.cfg.AccessToken {
				t.Errorf("accessToken = %q, want %q", client.accessToken, tt.cfg.AccessToken)
			}
			if client.httpClient.Timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, tt.wantTimeout)
			}
			if client.graphURL != graphBaseURL {
				t.Errorf("graphURL = %q, want %q", client.graphURL, graphBaseURL)
			}
			if client.graphVideoURL != graphVideoBaseURL {
				t.Errorf("graphVideoURL = %q, want %q", client.graphVideoURL, graphVideoBaseURL)
			}
		})
	}
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name string

		createStatus  int
		createBody    string
		publishStatus int
		publishBody   string

		wantID           string
		wantCreationErr  bool
		wantPublishErr   bool
		wantErrBody      string
		wantPublishCalls int
	}{
		{
			name:             "success",
			createStatus:     http.StatusOK,
			createBody:       `{"id": "17895"}`,
			publishStatus:    http.StatusOK,
			publishBody:      `{"id": "final123"}`,
			wantID:           "final123",
			wantPublishCalls: 1,
		},
		{
			name:             "missingContainerID",
			createStatus:     http.StatusOK,
			createBody:       `{}`,
			wantCreationErr:  true,
			wantPublishCalls: 0,
		},
		{
			name:             "creationBadStatus",
			createStatus:     http.StatusBadRequest,
			createBody:       `{"error": {"message": "Invalid video_url"}}`,
			wantCreationErr:  true,
			wantErrBody:      "Invalid video_url",
			wantPublishCalls: 0,
		},
		{
			name:             "creationMalformedBody",
			createStatus:     http.StatusOK,
			createBody:       `not json`,
			wantCreationErr:  true,
			wantErrBody:      "not json",
			wantPublishCalls: 0,
		},
		{
			name:             "publishServerError",
			createStatus:     http.StatusOK,
			createBody:       `{"id": "17895"}`,
			publishStatus:    http.StatusInternalServerError,
			publishBody:      `{"error": {"message": "media not ready"}}`,
			wantPublishErr:   true,
			wantErrBody:      "media not ready",
			wantPublishCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publishCalls := 0
			var publishForm map[string]string

			createSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/17841400000000000/media" {
					t.Errorf("create path = %q", r.URL.Path)
				}
				if err := r.ParseForm(); err != nil {
					t.Fatalf("parse create form: %v", err)
				}
				if got := r.PostForm.Get("video_url"); got != "https://example.com/video.mp4" {
					t.Errorf("video_url = %q", got)
				}
				if got := r.PostForm.Get("access_token"); got != "test-token" {
					t.Errorf("access_token = %q", got)
				}
				w.WriteHeader(tt.createStatus)
				_, _ = w.Write([]byte(tt.createBody))
			}))
			defer createSrv.Close()

			publishSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				publishCalls++
				if r.URL.Path != "/17841400000000000/media_publish" {
					t.Errorf("publish path = %q", r.URL.Path)
				}
				if err := r.ParseForm(); err != nil {
					t.Fatalf("parse publish form: %v", err)
				}
				publishForm = map[string]string{
					"creation_id":  r.PostForm.Get("creation_id"),
					"access_token": r.PostForm.Get("access_token"),
				}
				w.WriteHeader(tt.publishStatus)
				_, _ = w.Write([]byte(tt.publishBody))
			}))
			defer publishSrv.Close()

			client := NewClient(Config{AccountID: "17841400000000000", AccessToken: "test-token"})
			client.graphVideoURL = createSrv.URL
			client.graphURL = publishSrv.URL

			pub, err := client.Publish(context.Background(), "https://example.com/video.mp4", "Posted via AI backend!")

			if publishCalls != tt.wantPublishCalls {
				t.Errorf("publish calls = %d, want %d", publishCalls, tt.wantPublishCalls)
			}

			switch {
			case tt.wantCreationErr:
				var creationErr *CreationError
				if !errors.As(err, &creationErr) {
					t.Fatalf("Publish() error = %v, want *CreationError", err)
				}
				if creationErr.Body != tt.createBody {
					t.Errorf("CreationError.Body = %q, want %q", creationErr.Body, tt.createBody)
				}
				if tt.wantErrBody != "" && !strings.Contains(err.Error(), tt.wantErrBody) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.wantErrBody)
				}

			case tt.wantPublishErr:
				var publishErr *PublishError
				if !errors.As(err, &publishErr) {
					t.Fatalf("Publish() error = %v, want *PublishError", err)
				}
				if publishErr.StatusCode != tt.publishStatus {
					t.Errorf("PublishError.StatusCode = %d, want %d", publishErr.StatusCode, tt.publishStatus)
				}
				if publishErr.Body != tt.publishBody {
					t.Errorf("PublishError.Body = %q, want %q", publishErr.Body, tt.publishBody)
				}

			default:
				if err != nil {
					t.Fatalf("Publish() error = %v", err)
				}
				if pub.ID != tt.wantID {
					t.Errorf("Publication.ID = %q, want %q", pub.ID, tt.wantID)
				}
				if publishForm["creation_id"] != "17895" {
					t.Errorf("creation_id = %q, want %q", publishForm["creation_id"], "17895")
				}
				if publishForm["access_token"] != "test-token" {
					t.Errorf("publish access_token = %q", publishForm["access_token"])
				}
			}
		})
	}
}

func TestPublishNetworkError(t *testing.T) {
	client := NewClient(Config{AccountID: "17841400000000000", AccessToken: "token", Timeout: time.Second})
	client.graphVideoURL = "http://127.0.0.1:1"
	client.graphURL = "http://127.0.0.1:1"

	_, err := client.Publish(context.Background(), "https://example.com/video.mp4", "caption")
	if err == nil {
		t.Fatal("Publish() should fail when the endpoint is unreachable")
	}

	var creationErr *CreationError
	if errors.As(err, &creationErr) {
		t.Errorf("network failure should not be classified as *CreationError, got %v", err)
	}
}
