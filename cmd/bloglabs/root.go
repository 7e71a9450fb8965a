package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Coder-Harshit/bloglabs/pkg/config"
	"github.com/Coder-Harshit/bloglabs/pkg/content"
	"github.com/Coder-Harshit/bloglabs/pkg/model"
	"github.com/Coder-Harshit/bloglabs/pkg/settings"
	"github.com/Coder-Harshit/bloglabs/pkg/ui"
)

var (
	cfgFile   string
	appConfig config.Config

	startView string
	plain     bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bloglabs",
		Short: "BlogLabs - a personal blog that lives in your terminal",
		Long: `BlogLabs boots a simulated terminal where you can read blog posts,
browse projects and tweak display settings from the keyboard.

Content is read from a content/ tree of markdown files (blogs/, projects/,
about/) or from a prebuilt bundle written by "bloglabs build".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(cmd)
		},
		RunE: runTerminal,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	pf.String("content", "", "content directory (default is ./content)")
	pf.String("bundle", "", "prebuilt bundle file")

	f := cmd.Flags()
	f.Bool("watch", false, "rebuild content when files change")
	f.Bool("no-boot", false, "skip the boot sequence")
	f.Bool("touch", false, "tap lines to activate them")
	f.StringVar(&startView, "view", "main", "view to open on start (main, blogList, about, projectList, settings)")
	f.BoolVar(&plain, "plain", false, "print the start view and exit")

	cmd.AddCommand(newBuildCmd(), newNewCmd(), newASCIICmd(), newVersionCmd())
	return cmd
}

// flagKeys maps command-line flags onto configuration keys
var flagKeys = map[string]string{
	"content": "content_dir",
	"bundle":  "bundle",
	"watch":   "watch",
	"no-boot": "boot.skip",
	"touch":   "touch",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()
	for name, key := range flagKeys {
		if fl := cmd.Flags().Lookup(name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return err
			}
		}
	}
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// setupLogging sends log output to the configured file, or drops it so it
// cannot tear the alt screen.
func setupLogging(cfg config.Config) (io.Closer, error) {
	path := cfg.LogFile
	if path == "" && os.Getenv("BLOGLABS_DEBUG") != "" {
		path = "bloglabs-debug.log"
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	return tea.LogToFile(path, "bloglabs")
}

func runTerminal(cmd *cobra.Command, _ []string) error {
	cfg := appConfig

	view, ok := ui.ParseView(startView)
	if !ok {
		return fmt.Errorf("unknown view %q", startView)
	}

	interactive := !plain && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		closer, err := setupLogging(cfg)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		if closer != nil {
			defer closer.Close()
		}
	}

	settingsPath, err := cfg.ResolvedSettingsPath()
	if err != nil {
		return err
	}
	prefs := settings.Load(settings.NewFileStore(settingsPath))

	src, err := openContent(cfg, cfg.Watch && interactive)
	if err != nil {
		return err
	}
	defer src.Close()

	if !interactive {
		return printView(cmd.OutOrStdout(), src.bundle, prefs, view)
	}

	termCfg := ui.TerminalConfig{
		Bundle:   src.bundle,
		Settings: prefs,
		RepoURL:  cfg.RepoURL,
		SiteURL:  cfg.SiteURL,
		Touch:    cfg.Touch,
	}
	app := ui.NewAppModel(ui.AppConfig{
		Terminal:     termCfg,
		SkipBoot:     cfg.Boot.Skip,
		BootInterval: cfg.Boot.Interval,
		BootPause:    cfg.Boot.Pause,
		StartView:    view,
		Worker:       src.worker,
	})

	mouse := tea.WithMouseAllMotion()
	if cfg.Touch {
		mouse = tea.WithMouseCellMotion()
	}
	p := tea.NewProgram(app, tea.WithAltScreen(), mouse)
	if src.worker != nil {
		src.worker.SetProgram(p)
	}
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal: %w", err)
	}
	return nil
}

// printView renders one view without a terminal, one line per row.
func printView(w io.Writer, bundle *model.Bundle, prefs *settings.Settings, view ui.View) error {
	lr := lipgloss.NewRenderer(w)
	theme := ui.ThemeForMode(lr, prefs.String(settings.KeyThemeMode))
	nav := ui.NewNavigator(ui.NewContentSource(bundle, prefs))
	nav.Open(view)
	lines := ui.NewViewRenderer(theme, prefs).Lines(nav, bundle, prefs)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, theme.StyleLine(l)); err != nil {
			return err
		}
	}
	return nil
}

// contentSource is the loaded bundle plus the worker that keeps it fresh.
type contentSource struct {
	bundle *model.Bundle
	worker *ui.ContentWorker
	cache  *content.ArtCache
}

func (s *contentSource) Close() {
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			log.Printf("main: close art cache: %v", err)
		}
	}
}

// openContent builds the bundle from the content tree when one is found and
// falls back to the prebuilt bundle file otherwise.
func openContent(cfg config.Config, watch bool) (*contentSource, error) {
	src := &contentSource{}

	root, ok := config.ResolveContentDir(cfg.ContentDir)
	if !ok {
		b, err := content.ReadBundle(cfg.BundlePath)
		if err != nil {
			return nil, fmt.Errorf("no content directory found and no bundle at %s: %w", cfg.BundlePath, err)
		}
		src.bundle = b
		return src, nil
	}

	src.cache = openCache(cfg.CachePath)
	w, err := ui.NewContentWorker(ui.WorkerConfig{
		Root:          root,
		BundlePath:    cfg.BundlePath,
		Builder:       newBuilder(cfg, root, src.cache, false),
		DebounceDelay: cfg.Debounce,
		Watch:         watch,
	})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("start content worker: %w", err)
	}
	src.worker = w

	b := w.Refresh()
	if b == nil {
		werr := w.LastError()
		src.Close()
		if werr != nil {
			return nil, fmt.Errorf("build content: %w", werr)
		}
		return nil, fmt.Errorf("build content: no bundle produced")
	}
	src.bundle = b
	return src, nil
}

func openCache(path string) *content.ArtCache {
	if path == "" {
		return nil
	}
	cache, err := content.OpenArtCache(path)
	if err != nil {
		log.Printf("main: art cache disabled: %v", err)
		return nil
	}
	return cache
}

func newBuilder(cfg config.Config, root string, cache *content.ArtCache, drafts bool) *content.Builder {
	return content.NewBuilder(content.Options{
		Root:          root,
		PublicDir:     cfg.PublicDir,
		ArtWidth:      cfg.Art.Width,
		Normalize:     cfg.Art.Normalize,
		MarkdownWidth: cfg.Markdown.Width,
		MarkdownStyle: cfg.Markdown.Style,
		IncludeDrafts: drafts,
		Cache:         cache,
	})
}
