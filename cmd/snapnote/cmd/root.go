package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"snapnote/pkg/config"
	"snapnote/pkg/notion"
	"snapnote/pkg/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "snapnote",
	Short: "Push daily photos into a Notion database",
	Long: `snapnote connects your Notion workspace and uploads captioned photos
into a database of your choice.

Get started:
  snapnote login
  snapnote databases
  snapnote upload photo.jpg --caption "Sunset"`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func openStore() store.Store {
	return store.Open("snapnote", config.CredentialsPath())
}

// tokenSource prefers the stored OAuth credential and falls back to a
// legacy static integration token from the config file.
func tokenSource(cfg config.Config, s store.Store) notion.TokenSource {
	return func() (string, error) {
		token, err := s.Get(store.KeyAccessToken)
		if err != nil {
			return "", err
		}
		if token == "" {
			token = cfg.NotionToken
		}
		if token == "" {
			return "", errors.New("no Notion token available - please sign in with 'snapnote login'")
		}
		return token, nil
	}
}
