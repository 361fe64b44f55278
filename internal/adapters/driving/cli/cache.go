package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the local gene cache",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached gene records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cacheStore == nil {
			return errors.New("cache store not configured")
		}

		entries := cacheStore.Entries()
		if len(entries) == 0 {
			cmd.Println("Cache is empty.")
			return nil
		}
		for _, entry := range entries {
			rec := entry.Record
			line := rec.Symbol + " (Entrez:" + rec.EntrezID
			if rec.SourceTier != "" {
				line += ", via " + rec.SourceTier
			}
			line += ")"
			if !entry.FetchedAt.IsZero() {
				line += " fetched " + entry.FetchedAt.Format("2006-01-02")
			}
			cmd.Println(line)
		}
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cacheStore == nil {
			return errors.New("cache store not configured")
		}
		type pather interface{ Path() string }
		if p, ok := cacheStore.(pather); ok {
			cmd.Println(p.Path())
			return nil
		}
		cmd.Println("(in-memory cache, no file)")
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached gene records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cacheStore == nil {
			return errors.New("cache store not configured")
		}
		if err := cacheStore.Clear(); err != nil {
			return err
		}
		cmd.Println("Cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cachePathCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
