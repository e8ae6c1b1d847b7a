package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"snapnote/pkg/notion"
)

var uploadCaption string

var uploadCmd = &cobra.Command{
	Use:   "upload <photo>",
	Short: "Upload a photo to your Notion database",
	Long: `Upload a photo into the selected Notion database.

The upload runs the three-step Notion protocol: create an upload
handle, stream the file bytes, create the database record. There are
no retries; re-run the command if it fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVarP(&uploadCaption, "caption", "c", "", "caption for the photo (defaults to the date)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	photoPath := args[0]
	if _, err := os.Stat(photoPath); err != nil {
		return fmt.Errorf("cannot read photo: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := openStore()
	client := notion.NewClient(tokenSource(cfg, s))
	pipeline := notion.NewPipeline(client, s)

	fmt.Printf("Uploading %s...\n", photoPath)

	page, err := pipeline.Upload(cmd.Context(), photoPath, uploadCaption)
	if err != nil {
		var phaseErr *notion.PhaseError
		if errors.As(err, &phaseErr) {
			return fmt.Errorf("upload failed at %s: %w", phaseErr.Phase, phaseErr.Err)
		}
		return err
	}

	fmt.Printf("Uploaded! Page created: %s\n", page.URL)
	return nil
}
