package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath    = "config.yaml"
	defaultKeyFile       = "./service_account.json"
	defaultPrivacyStatus = "unlisted"
	defaultCategoryID    = "22"
	defaultCaption       = "Posted via AI backend!"
	defaultStagingPrefix = "staging"
)

type Config struct {
	InstagramAccessToken string
	InstagramAccountID   string
	YouTubeKeyFile       string
	GroqAPIKey           string
	GCSBucket            string

	Instagram InstagramConfig `yaml:"instagram"`
	YouTube   YouTubeConfig   `yaml:"youtube"`
	GCS       GCSConfig       `yaml:"gcs"`
	Caption   CaptionConfig   `yaml:"caption"`
}

type InstagramConfig struct {
	DefaultCaption string `yaml:"default_caption"`
}

type YouTubeConfig struct {
	DefaultTags   []string `yaml:"default_tags"`
	PrivacyStatus string   `yaml:"privacy_status"`
	CategoryID    string   `yaml:"category_id"`
}

type GCSConfig struct {
	StagingPrefix string `yaml:"staging_prefix"`
}

type CaptionConfig struct {
	Model string `yaml:"model"`
}

// Load reads credentials from the environment (via .env when present),
// layers config.yaml on top of defaults, and resolves the Instagram access
// token from Secret Manager when only a secret reference is configured.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		InstagramAccessToken: os.Getenv("INSTAGRAM_ACCESS_TOKEN"),
		InstagramAccountID:   os.Getenv("INSTAGRAM_ACCOUNT_ID"),
		YouTubeKeyFile:       getEnvOrDefault("YOUTUBE_KEY_FILE", defaultKeyFile),
		GroqAPIKey:           os.Getenv("GROQ_API_KEY"),
		GCSBucket:            os.Getenv("GCS_BUCKET"),
	}

	if err := loadYAML(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if cfg.InstagramAccessToken == "" {
		if secretName := os.Getenv("INSTAGRAM_ACCESS_TOKEN_SECRET"); secretName != "" {
			token, err := resolveSecret(ctx, secretName)
			if err != nil {
				return nil, fmt.Errorf("resolve instagram access token: %w", err)
			}
			cfg.InstagramAccessToken = token
		}
	}

	return cfg, nil
}

func loadYAML(cfg *Config) error {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Debug("No config.yaml found, using defaults")
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config.yaml: %w", err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Instagram.DefaultCaption == "" {
		cfg.Instagram.DefaultCaption = defaultCaption
	}
	if len(cfg.YouTube.DefaultTags) == 0 {
		cfg.YouTube.DefaultTags = []string{"AI", "Video", "Generated"}
	}
	if cfg.YouTube.PrivacyStatus == "" {
		cfg.YouTube.PrivacyStatus = defaultPrivacyStatus
	}
	if cfg.YouTube.CategoryID == "" {
		cfg.YouTube.CategoryID = defaultCategoryID
	}
	if cfg.GCS.StagingPrefix == "" {
		cfg.GCS.StagingPrefix = defaultStagingPrefix
	}
}

// resolveSecret fetches a secret payload from Google Secret Manager. Bare
// names are expanded to the latest version under GOOGLE_CLOUD_PROJECT.
func resolveSecret(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(name, os.Getenv("GOOGLE_CLOUD_PROJECT")),
	})
	if err != nil {
		return "", fmt.Errorf("access secret version: %w", err)
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}

func secretVersionName(name, project string) string {
	if strings.Contains(name, "/") {
		return name
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", project, name)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
