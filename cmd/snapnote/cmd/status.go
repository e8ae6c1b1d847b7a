package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"snapnote/pkg/auth"
	"snapnote/pkg/oauth"
	"snapnote/pkg/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication and configuration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		s := openStore()
		life := auth.New(s, oauth.NewCoordinator(oauth.Config{
			ClientID:  cfg.ClientID,
			RelayURL:  cfg.RelayURL,
			AppScheme: cfg.AppScheme,
		}))

		state := life.CheckAuthStatus()
		if !state.IsAuthenticated {
			fmt.Println("Not connected to Notion - run 'snapnote login'")
			return nil
		}

		if state.WorkspaceName != "" {
			fmt.Printf("Connected to workspace %q\n", state.WorkspaceName)
		} else {
			fmt.Println("Connected to Notion")
		}

		databaseID, err := s.Get(store.KeyDatabaseID)
		if err != nil {
			return err
		}
		if databaseID == "" {
			fmt.Println("No database selected - run 'snapnote databases'")
		} else {
			fmt.Printf("Target database: %s\n", databaseID)
		}

		if lastPhoto, err := s.Get(store.KeyLastPhoto); err == nil && lastPhoto != "" {
			if unix, err := strconv.ParseInt(lastPhoto, 10, 64); err == nil {
				fmt.Printf("Last upload: %s\n", time.Unix(unix, 0).Format(time.RFC1123))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
