package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"storypost/internal/caption"
	"storypost/internal/instagram"
	"storypost/internal/storage"
	"storypost/pkg/config"

	"github.com/spf13/cobra"
)

var (
	igVideoURL     string
	igFile         string
	igCaption      string
	igCaptionTopic string
)

var instagramCmd = &cobra.Command{
	Use:   "instagram",
	Short: "Publish a video to Instagram",
	Long: `Publish a video to an Instagram professional account. The Graph API
fetches the video by URL; local files are first staged to the configured
GCS bucket to obtain one.`,
	RunE: runInstagram,
}

func init() {
	instagramCmd.Flags().StringVarP(&igVideoURL, "video-url", "u", "", "Public URL of the video to publish")
	instagramCmd.Flags().StringVarP(&igFile, "file", "f", "", "Local video file (staged to GCS before publishing)")
	instagramCmd.Flags().StringVarP(&igCaption, "caption", "c", "", "Caption for the post")
	instagramCmd.Flags().StringVar(&igCaptionTopic, "caption-topic", "", "Generate a caption about this topic with Groq")
	rootCmd.AddCommand(instagramCmd)
}

func runInstagram(cmd *cobra.Command, args []string) error {
	if igVideoURL == "" && igFile == "" {
		return errors.New("please provide --video-url or --file")
	}
	if igVideoURL != "" && igFile != "" {
		return errors.New("--video-url and --file are mutually exclusive")
	}

	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if cfg.InstagramAccessToken == "" || cfg.InstagramAccountID == "" {
		return errors.New("INSTAGRAM_ACCESS_TOKEN and INSTAGRAM_ACCOUNT_ID must be set")
	}

	videoURL := igVideoURL
	if videoURL == "" {
		videoURL, err = stageVideo(ctx, cfg, igFile)
		if err != nil {
			return err
		}
	}

	postCaption, err := resolveCaption(ctx, cfg)
	if err != nil {
		return err
	}

	client := instagram.NewClient(instagram.Config{
		AccountID:   cfg.InstagramAccountID,
		AccessToken: cfg.InstagramAccessToken,
	})

	slog.Info("Publishing to Instagram...", "video_url", videoURL)
	pub, err := client.Publish(ctx, videoURL, postCaption)
	if err != nil {
		return err
	}

	slog.Info("Published to Instagram", "id", pub.ID)
	return nil
}

func stageVideo(ctx context.Context, cfg *config.Config, file string) (string, error) {
	if cfg.GCSBucket == "" {
		return "", errors.New("staging a local file requires GCS_BUCKET")
	}

	stager, err := storage.NewGCSStager(ctx, cfg.GCSBucket, cfg.GCS.StagingPrefix)
	if err != nil {
		return "", err
	}
	defer func() { _ = stager.Close() }()

	slog.Info("Staging video...", "file", file, "bucket", cfg.GCSBucket)
	videoURL, err := stager.Stage(ctx, file)
	if err != nil {
		return "", fmt.Errorf("stage video: %w", err)
	}

	return videoURL, nil
}

func resolveCaption(ctx context.Context, cfg *config.Config) (string, error) {
	if igCaption != "" {
		return igCaption, nil
	}

	if igCaptionTopic != "" {
		if cfg.GroqAPIKey == "" {
			return "", errors.New("--caption-topic requires GROQ_API_KEY")
		}

		gen, err := caption.NewGenerator(cfg.GroqAPIKey, cfg.Caption.Model)
		if err != nil {
			return "", err
		}

		slog.Info("Generating caption...", "topic", igCaptionTopic)
		return gen.Caption(ctx, igCaptionTopic)
	}

	return cfg.Instagram.DefaultCaption, nil
}
