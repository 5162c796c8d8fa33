package cmd

import (
	"errors"
	"log/slog"

	"storypost/internal/caption"
	"storypost/internal/youtube"
	"storypost/pkg/config"

	"github.com/spf13/cobra"
)

var (
	ytFile        string
	ytTitle       string
	ytDescription string
	ytPrivacy     string
	ytTitleTopic  string
)

var youtubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Upload a video to YouTube",
	Long:  `Upload a local video file to YouTube using the service account key from YOUTUBE_KEY_FILE.`,
	RunE:  runYouTube,
}

func init() {
	youtubeCmd.Flags().StringVarP(&ytFile, "file", "f", "", "Local video file to upload")
	youtubeCmd.Flags().StringVarP(&ytTitle, "title", "t", "", "Video title")
	youtubeCmd.Flags().StringVarP(&ytDescription, "description", "d", "", "Video description")
	youtubeCmd.Flags().StringVar(&ytPrivacy, "privacy", "", "Privacy status (default from config, normally unlisted)")
	youtubeCmd.Flags().StringVar(&ytTitleTopic, "title-topic", "", "Generate a title about this topic with Groq")
	_ = youtubeCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(youtubeCmd)
}

func runYouTube(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	title := ytTitle
	if title == "" {
		if ytTitleTopic == "" {
			return errors.New("please provide --title or --title-topic")
		}
		if cfg.GroqAPIKey == "" {
			return errors.New("--title-topic requires GROQ_API_KEY")
		}

		gen, err := caption.NewGenerator(cfg.GroqAPIKey, cfg.Caption.Model)
		if err != nil {
			return err
		}

		slog.Info("Generating title...", "topic", ytTitleTopic)
		title, err = gen.Title(ctx, ytTitleTopic)
		if err != nil {
			return err
		}
	}

	client, err := youtube.NewClient(ctx, cfg.YouTubeKeyFile)
	if err != nil {
		return err
	}

	privacy := ytPrivacy
	if privacy == "" {
		privacy = cfg.YouTube.PrivacyStatus
	}

	slog.Info("Uploading to YouTube...", "file", ytFile, "title", title)
	id, err := client.Upload(ctx, youtube.UploadRequest{
		FilePath:    ytFile,
		Title:       title,
		Description: ytDescription,
		Tags:        cfg.YouTube.DefaultTags,
		Privacy:     privacy,
		CategoryID:  cfg.YouTube.CategoryID,
	})
	if err != nil {
		return err
	}

	slog.Info("Upload complete", "id", id, "url", youtube.WatchURL(id))
	return nil
}
