package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Coder-Harshit/bloglabs/pkg/config"
	"github.com/Coder-Harshit/bloglabs/pkg/scaffold"
)

// interactiveInput reports whether forms can be shown
var interactiveInput = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new post or project",
	}
	cmd.PersistentFlags().Bool("no-form", false, "never prompt; use flags only")
	cmd.PersistentFlags().Bool("force", false, "overwrite an existing file")
	cmd.AddCommand(newPostCmd(), newProjectCmd())
	return cmd
}

// contentRoot returns the content directory, creating the configured one
// when none exists yet.
func contentRoot(cfg config.Config) string {
	if info, err := os.Stat(cfg.ContentDir); err == nil && info.IsDir() {
		return cfg.ContentDir
	}
	if root, ok := config.ResolveContentDir(cfg.ContentDir); ok {
		return root
	}
	return filepath.Clean(cfg.ContentDir)
}

func useForm(cmd *cobra.Command) bool {
	noForm, _ := cmd.Flags().GetBool("no-form")
	return !noForm && interactiveInput()
}

func newPostCmd() *cobra.Command {
	var (
		author  string
		date    string
		summary string
		tags    string
		draft   bool
	)
	cmd := &cobra.Command{
		Use:   "post [TITLE]",
		Short: "Create content/blogs/<slug>.md",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := scaffold.NewPostDraft(strings.Join(args, " "), time.Now())
			d.Author = author
			d.Summary = summary
			d.Tags = scaffold.SplitTags(tags)
			d.Draft = draft
			if date != "" {
				d.Date = date
			}

			if useForm(cmd) {
				form, finish := scaffold.PostForm(&d)
				if err := form.Run(); err != nil {
					return err
				}
				finish()
			}

			force, _ := cmd.Flags().GetBool("force")
			path, err := scaffold.WritePost(contentRoot(appConfig), d, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&author, "author", "", "post author")
	f.StringVar(&date, "date", "", "publication date, YYYY-MM-DD (default today)")
	f.StringVar(&summary, "summary", "", "one-line summary")
	f.StringVar(&tags, "tags", "", "comma separated tags")
	f.BoolVar(&draft, "draft", false, "mark the post as a draft")
	return cmd
}

func newProjectCmd() *cobra.Command {
	var d scaffold.ProjectDraft
	cmd := &cobra.Command{
		Use:   "project [NAME]",
		Short: "Create content/projects/<slug>.md",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Name = strings.Join(args, " ")

			if useForm(cmd) {
				form, finish := scaffold.ProjectForm(&d)
				if err := form.Run(); err != nil {
					return err
				}
				finish()
			}

			force, _ := cmd.Flags().GetBool("force")
			path, err := scaffold.WriteProject(contentRoot(appConfig), d, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&d.Description, "description", "", "short description")
	f.StringVar(&d.GitHubURL, "github", "", "repository URL")
	f.StringVar(&d.LiveURL, "live", "", "live demo URL")
	f.IntVar(&d.Order, "order", 0, "sort position, lower first")
	return cmd
}
