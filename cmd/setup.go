package cmd

import (
	"fmt"
	"os"
	"strings"

	"storypost/internal/youtube"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard for Storypost",
	Long:  `Configure Instagram and YouTube credentials and write them to .env.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println(titleStyle.Render("📤 Storypost Setup"))

	if _, err := os.Stat(".env"); err == nil {
		var overwrite bool
		if err := huh.NewConfirm().
			Title("Found existing .env file").
			Description("Overwrite?").
			Value(&overwrite).
			Run(); err != nil {
			return err
		}
		if !overwrite {
			fmt.Println(infoStyle.Render("Kept existing .env"))
			return nil
		}
	}

	env := make(map[string]string)

	if err := configureInstagram(env); err != nil {
		return err
	}

	if err := configureYouTube(env); err != nil {
		return err
	}

	if err := configureOptional(env); err != nil {
		return err
	}

	return writeEnvFile(env)
}

func configureInstagram(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup Instagram publishing?").
		Description("Requires a professional account and a Graph API access token").
		Value(&setup).
		Run(); err != nil || !setup {
		return err
	}

	fmt.Println(infoStyle.Render(`
To get Instagram credentials:
1. Create a Meta app at https://developers.facebook.com/apps
2. Link it to your Instagram professional account
3. Generate a long-lived access token with instagram_content_publish
4. Find the account id under the linked Instagram account
`))

	var token, accountID string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Instagram Access Token").
				EchoMode(huh.EchoModePassword).
				Value(&token),
			huh.NewInput().
				Title("Instagram Account ID").
				Value(&accountID),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if token = strings.TrimSpace(token); token != "" {
		env["INSTAGRAM_ACCESS_TOKEN"] = token
	}
	if accountID = strings.TrimSpace(accountID); accountID != "" {
		env["INSTAGRAM_ACCOUNT_ID"] = accountID
	}

	return nil
}

func configureYouTube(env map[string]string) error {
	var setup bool
	if err := huh.NewConfirm().
		Title("Setup YouTube uploads?").
		Description("Requires a service account key with the youtube.upload scope").
		Value(&setup).
		Run(); err != nil || !setup {
		return err
	}

	fmt.Println(infoStyle.Render(`
To create a service account key:
1. Go to https://console.cloud.google.com/iam-admin/serviceaccounts
2. Create a service account and grant it access to your channel
3. Create a JSON key and download it
`))

	var keyFile string
	if err := huh.NewInput().
		Title("Service account key file").
		Placeholder("./service_account.json").
		Value(&keyFile).
		Run(); err != nil {
		return err
	}

	keyFile = strings.TrimSpace(keyFile)
	if keyFile == "" {
		return nil
	}

	err := runWithSpinner("Checking service account key", func() error {
		return youtube.ValidateKey(keyFile)
	})
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Key check failed: %v", err)))
		fmt.Println(infoStyle.Render("Saved anyway - fix the key file before uploading"))
	}

	env["YOUTUBE_KEY_FILE"] = keyFile
	return nil
}

func configureOptional(env map[string]string) error {
	var bucket, groqKey string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GCS staging bucket (optional)").
				Description("Needed to publish local files to Instagram").
				Value(&bucket),
			huh.NewInput().
				Title("Groq API Key (optional)").
				Description("Enables caption/title generation - https://console.groq.com/keys").
				EchoMode(huh.EchoModePassword).
				Value(&groqKey),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if bucket = strings.TrimSpace(bucket); bucket != "" {
		env["GCS_BUCKET"] = bucket
	}
	if groqKey = strings.TrimSpace(groqKey); groqKey != "" {
		env["GROQ_API_KEY"] = groqKey
	}

	return nil
}

func writeEnvFile(env map[string]string) error {
	f, err := os.Create(".env")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	order := []string{
		"INSTAGRAM_ACCESS_TOKEN",
		"INSTAGRAM_ACCOUNT_ID",
		"YOUTUBE_KEY_FILE",
		"GCS_BUCKET",
		"GROQ_API_KEY",
	}

	for _, key := range order {
		if val, ok := env[key]; ok && val != "" {
			_, _ = fmt.Fprintf(f, "%s=%s\n", key, val)
		}
	}

	fmt.Println(successStyle.Render("✓ Created .env file"))
	printNextSteps()
	return nil
}

func printNextSteps() {
	fmt.Println()
	fmt.Println(titleStyle.Render("Next steps:"))
	fmt.Println("  1. Check credentials: storypost status")
	fmt.Println("  2. Publish: storypost instagram -f video.mp4")
	fmt.Println("  3. Or upload: storypost youtube -f video.mp4 -t \"My title\"")
}

func runWithSpinner(title string, fn func() error) error {
	var err error
	_ = spinner.New().
		Title(title).
		Action(func() { err = fn() }).
		Run()
	if err != nil {
		return err
	}
	fmt.Println(successStyle.Render("✓ " + title))
	return nil
}
