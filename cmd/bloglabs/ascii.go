package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Coder-Harshit/bloglabs/pkg/ascii"
	"github.com/Coder-Harshit/bloglabs/pkg/settings"
)

func newASCIICmd() *cobra.Command {
	var (
		width     int
		normalize bool
		svgPath   string
		fontSize  int
	)
	cmd := &cobra.Command{
		Use:   "ascii IMAGE",
		Short: "Convert an image to ASCII art",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") {
				width = appConfig.Art.Width
			}
			if !cmd.Flags().Changed("normalize") {
				normalize = appConfig.Art.Normalize
			}

			art, err := ascii.ConvertFile(args[0], ascii.Options{Width: width, Normalize: normalize})
			if err != nil {
				return err
			}
			if svgPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), art)
				return nil
			}

			opts, err := svgOptions(cmd.Flags().Changed("font-size"), fontSize)
			if err != nil {
				return err
			}
			f, err := os.Create(svgPath)
			if err != nil {
				return err
			}
			if err := ascii.RenderSVG(f, art, opts); err != nil {
				f.Close()
				return fmt.Errorf("render svg: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svgPath)
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", ascii.DefaultWidth, "output width in characters")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "stretch contrast before mapping")
	cmd.Flags().StringVar(&svgPath, "svg", "", "write the art as an SVG file instead of printing it")
	cmd.Flags().IntVar(&fontSize, "font-size", 0, "SVG font size in px (default from the Font Size setting)")
	return cmd
}

// svgOptions takes the font from the saved settings; an explicit
// --font-size wins over the Font Size preference.
func svgOptions(sizeSet bool, size int) (ascii.SVGOptions, error) {
	path, err := appConfig.ResolvedSettingsPath()
	if err != nil {
		return ascii.SVGOptions{}, err
	}
	prefs := settings.Load(settings.NewFileStore(path))
	opts := ascii.SVGOptions{
		FontSize:   prefs.FontPixels(),
		FontFamily: prefs.String(settings.KeyFontFamily),
	}
	if sizeSet {
		opts.FontSize = size
	}
	return opts, nil
}
