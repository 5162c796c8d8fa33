package cmd

import (
	"fmt"

	"storypost/internal/youtube"
	"storypost/pkg/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	statusInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	statusSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check which credentials are configured",
	Long:  `Verify which platforms are ready to publish with the current environment.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println(statusInfoStyle.Render("\nCredential Status:\n"))

	if cfg.InstagramAccessToken != "" && cfg.InstagramAccountID != "" {
		fmt.Println(statusSuccessStyle.Render("✓ Instagram: access token and account id configured"))
	} else {
		fmt.Println(statusErrorStyle.Render("✗ Instagram: missing INSTAGRAM_ACCESS_TOKEN or INSTAGRAM_ACCOUNT_ID"))
	}

	if err := youtube.ValidateKey(cfg.YouTubeKeyFile); err == nil {
		fmt.Println(statusSuccessStyle.Render("✓ YouTube: service account key is valid"))
	} else {
		fmt.Println(statusErrorStyle.Render("✗ YouTube: " + err.Error()))
		fmt.Println(statusInfoStyle.Render("  Set YOUTUBE_KEY_FILE to a service account key with the upload scope"))
	}

	if cfg.GCSBucket != "" {
		fmt.Println(statusSuccessStyle.Render("✓ GCS staging: bucket configured (" + cfg.GCSBucket + ")"))
	} else {
		fmt.Println(statusInfoStyle.Render("○ GCS staging: not configured (required only for local Instagram files)"))
	}

	if cfg.GroqAPIKey != "" {
		fmt.Println(statusSuccessStyle.Render("✓ Groq: API key configured"))
	} else {
		fmt.Println(statusInfoStyle.Render("○ Groq: not configured (caption/title generation disabled)"))
	}

	fmt.Println()
	return nil
}
