package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapnote/pkg/auth"
	"snapnote/pkg/oauth"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Disconnect from Notion",
	Long: `Remove the stored Notion credential and workspace identity.

The token is only cleared locally; it is not revoked with Notion.`,
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

		if err := life.Logout(); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}
		fmt.Println("Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
