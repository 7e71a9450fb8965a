package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Coder-Harshit/bloglabs/pkg/config"
	"github.com/Coder-Harshit/bloglabs/pkg/content"
)

func newBuildCmd() *cobra.Command {
	var (
		out       string
		drafts    bool
		gitignore bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Ingest the content tree and write the bundle",
		Long: `Build parses every markdown file under the content directory, renders
markup and code, converts images to ASCII art and writes the resulting
bundle as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appConfig
			root, ok := config.ResolveContentDir(cfg.ContentDir)
			if !ok {
				return fmt.Errorf("content directory %q not found", cfg.ContentDir)
			}
			if out == "" {
				out = cfg.BundlePath
			}

			cache := openCache(cfg.CachePath)
			if cache != nil {
				defer cache.Close()
			}

			bundle, err := newBuilder(cfg, root, cache, drafts).Build(context.Background())
			if err != nil {
				return fmt.Errorf("build content: %w", err)
			}
			if err := content.WriteBundle(out, bundle); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Built %d posts and %d projects from %s\n", len(bundle.Posts), len(bundle.Projects), root)
			if cache != nil {
				if n, err := cache.Len(); err == nil {
					fmt.Fprintf(w, "Art cache holds %d entries\n", n)
				}
			}
			fmt.Fprintf(w, "Wrote %s\n", out)

			if gitignore {
				if added, err := config.EnsureIgnored(".", config.StateDir); err != nil {
					log.Printf("build: update .gitignore: %v", err)
				} else if added {
					fmt.Fprintf(w, "Added %s/ to .gitignore\n", config.StateDir)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "bundle output path (default from config)")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include posts marked draft")
	cmd.Flags().BoolVar(&gitignore, "gitignore", true, "add the state directory to .gitignore in a git checkout")
	return cmd
}
