// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/library"
	"github.com/pdiddy/paper-scout/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Query the catalog of previously accepted papers",
	Long: `Library queries the SQLite catalog that search --index populates. Filters
combine with AND; with no filters the most recent entries are listed.`,
	RunE: runLibrary,
}

func init() {
	libraryCmd.Flags().String("db", "library/papers.db", "library catalog database path")
	libraryCmd.Flags().String("title", "", "filter by title substring")
	libraryCmd.Flags().String("venue", "", "filter by venue substring")
	libraryCmd.Flags().Int("year", 0, "filter by publication year")
	libraryCmd.Flags().Int("limit", 20, "maximum number of results")
	libraryCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(libraryCmd)
}

func runLibrary(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	title, _ := cmd.Flags().GetString("title")
	venue, _ := cmd.Flags().GetString("venue")
	year, _ := cmd.Flags().GetInt("year")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := library.Open(types.LibraryConfig{DBPath: dbPath, MaxResults: limit})
	if err != nil {
		return err
	}
	defer store.Close()

	papers, err := store.Search(library.SearchOptions{
		TitleLike: title,
		VenueLike: venue,
		Year:      year,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(papers)
	}

	if len(papers) == 0 {
		fmt.Fprintln(w, "No cataloged papers match.")
		return nil
	}

	fmt.Fprintf(w, "%-60s  %-4s  %s\n", "Title", "Year", "Venue")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, p := range papers {
		title := p.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		year := ""
		if p.Year != 0 {
			year = fmt.Sprintf("%d", p.Year)
		}
		fmt.Fprintf(w, "%-60s  %-4s  %s\n", title, year, p.Venue)
	}
	fmt.Fprintf(w, "\n%d papers\n", len(papers))
	return nil
}
