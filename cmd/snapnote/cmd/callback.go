package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapnote/pkg/auth"
	"snapnote/pkg/listener"
	"snapnote/pkg/oauth"
)

// callbackCmd handles a deep-link activation: when the OS routes a
// snapnote:// URL to this binary, the raw URL arrives as the argument.
var callbackCmd = &cobra.Command{
	Use:    "callback <url>",
	Short:  "Process an OAuth callback URL delivered as a deep link",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, ok, err := listener.ParseCallbackURL(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("not an oauth callback URL: %s", args[0])
		}

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

		if err := life.ProcessCallback(tokens); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		state := life.State()
		if state.WorkspaceName != "" {
			fmt.Printf("Connected to workspace %q\n", state.WorkspaceName)
		} else {
			fmt.Println("Connected to Notion")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(callbackCmd)
}
