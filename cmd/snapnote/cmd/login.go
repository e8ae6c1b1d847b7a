package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"snapnote/pkg/auth"
	"snapnote/pkg/listener"
	"snapnote/pkg/oauth"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Connect your Notion workspace",
	Long: `Connect your Notion workspace.

Your browser will open for Notion's authorization page. The callback
relay exchanges the authorization code and redirects back here; press
Ctrl-C to cancel.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := openStore()
	coord := oauth.NewCoordinator(oauth.Config{
		ClientID:     cfg.ClientID,
		AuthorizeURL: cfg.AuthorizeURL,
		RelayURL:     cfg.RelayURL,
		AppScheme:    cfg.AppScheme,
	})
	life := auth.New(s, coord)

	done := make(chan error, 1)
	l := listener.New(cfg.ListenAddr, func(tokens listener.TokenSet) {
		done <- life.ProcessCallback(tokens)
	})

	if _, err := l.Start(); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = l.Stop(shutdownCtx)
	}()

	session, err := life.Login()
	if err != nil {
		return err
	}

	fmt.Printf("Opening browser for Notion authentication...\n")
	fmt.Printf("If the browser doesn't open, visit:\n%s\n\n", session.AuthURL())
	fmt.Printf("Waiting for authentication to complete (Ctrl-C to cancel)...\n")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		state := life.State()
		if state.WorkspaceName != "" {
			fmt.Printf("\nConnected to workspace %q\n", state.WorkspaceName)
		} else {
			fmt.Printf("\nConnected to Notion\n")
		}
		fmt.Printf("Next: run 'snapnote databases' to pick a target database\n")
		return nil

	case <-ctx.Done():
		life.Cancel()
		// A callback may have beaten the interrupt; don't report a
		// completed login as cancelled.
		if session.Status() == oauth.StatusCompleted {
			fmt.Printf("\nLogin already completed\n")
			return nil
		}
		fmt.Printf("\nLogin cancelled\n")
		return nil
	}
}
