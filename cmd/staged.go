package cmd

import (
	"context"
	"errors"
	"fmt"

	"storypost/internal/storage"
	"storypost/pkg/config"

	"github.com/spf13/cobra"
)

var stagedCmd = &cobra.Command{
	Use:   "staged",
	Short: "Manage videos staged for Instagram",
	Long:  `List or remove videos that were staged to the GCS bucket for Instagram publishing.`,
	RunE:  runStagedList,
}

var stagedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all staged videos",
	RunE:  runStagedClear,
}

func init() {
	stagedCmd.AddCommand(stagedClearCmd)
	rootCmd.AddCommand(stagedCmd)
}

func runStagedList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	stager, err := newStager(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = stager.Close() }()

	objects, err := stager.ListStaged(ctx)
	if err != nil {
		return err
	}

	if len(objects) == 0 {
		fmt.Println("No staged videos")
		return nil
	}

	for _, name := range objects {
		fmt.Println(name)
	}
	return nil
}

func runStagedClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	stager, err := newStager(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = stager.Close() }()

	count, err := stager.ClearStaged(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %d staged video(s)\n", count)
	return nil
}

func newStager(ctx context.Context) (*storage.GCSStager, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	if cfg.GCSBucket == "" {
		return nil, errors.New("GCS_BUCKET must be set")
	}

	return storage.NewGCSStager(ctx, cfg.GCSBucket, cfg.GCS.StagingPrefix)
}
