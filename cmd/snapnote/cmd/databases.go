package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"snapnote/pkg/notion"
	"snapnote/pkg/store"
)

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List Notion databases and pick an upload target",
	Long: `List the databases your Notion integration can see.

A valid target database has a "Caption" title property and a "Photo"
files property. Select one with:
  snapnote databases use <id>`,
	RunE: runListDatabases,
}

var databasesUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select the database uploads go to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openStore()
		if err := s.Set(store.KeyDatabaseID, args[0]); err != nil {
			return fmt.Errorf("failed to save database selection: %w", err)
		}
		fmt.Printf("Target database set to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(databasesCmd)
	databasesCmd.AddCommand(databasesUseCmd)
}

func runListDatabases(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := openStore()
	client := notion.NewClient(tokenSource(cfg, s))

	databases, err := client.SearchDatabases(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load databases: %w", err)
	}

	if len(databases) == 0 {
		fmt.Println("No databases found.")
		fmt.Println("Create a database with \"Caption\" (title) and \"Photo\" (files) properties and share it with the integration.")
		return nil
	}

	selected, err := s.Get(store.KeyDatabaseID)
	if err != nil {
		return err
	}

	for _, db := range databases {
		marker := " "
		if db.ID == selected {
			marker = "*"
		}

		valid := slices.Contains(db.Properties, "Caption") && slices.Contains(db.Properties, "Photo")
		note := ""
		if !valid {
			note = " (missing Caption and/or Photo properties)"
		}

		fmt.Printf("%s %s  %s%s\n", marker, db.ID, db.Title, note)
	}

	fmt.Printf("\nSelect one with: snapnote databases use <id>\n")
	return nil
}
