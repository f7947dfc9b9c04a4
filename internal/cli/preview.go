package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbauer/flowview/pkg/cache"
	"github.com/hbauer/flowview/pkg/flowchart"
	"github.com/hbauer/flowview/pkg/preview"
	"github.com/hbauer/flowview/pkg/visibility"
)

// Preview output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// previewCommand creates the preview command for rendering the visible
// subset as Graphviz DOT or SVG.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		opts     filterOptions
		output   string
		format   string
		noCache  bool
		cacheDir string
	)

	cmd := &cobra.Command{
		Use:   "preview [diagram.mmd]",
		Short: "Render the visible subset as Graphviz DOT or SVG",
		Long: `Render the visible subset as Graphviz DOT or SVG.

The same visibility flags as 'filter' select which nodes appear; the
result is translated to Graphviz DOT and, for SVG output, laid out with
the embedded Graphviz engine. SVG results are cached locally so repeated
previews of the same selection skip the layout step.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			source, err := readInput(input)
			if err != nil {
				return err
			}
			return c.runPreview(cmd, source, opts, output, format, noCache, cacheDir)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default ~/.cache/flowview)")
	cmd.Flags().BoolVar(&opts.HideAll, "hide-all", false, "start with every node hidden")
	cmd.Flags().StringArrayVar(&opts.Descendants, "descendants", nil, "show a node and everything reachable from it (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Ancestors, "ancestors", nil, "show a node and everything that reaches it (repeatable)")
	cmd.Flags().StringVar(&opts.Show, "show", "", "comma-separated node ids to show")
	cmd.Flags().StringVar(&opts.Hide, "hide", "", "comma-separated node ids to hide")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, source string, opts filterOptions, output, format string, noCache bool, dir string) error {
	ctx := cmd.Context()

	m := flowchart.Parse(source)
	vis := visibility.New(m)
	if opts.HideAll {
		vis.HideAll()
	}
	for _, id := range opts.Descendants {
		vis.ShowDescendants(id)
	}
	for _, id := range opts.Ancestors {
		vis.ShowAncestors(id)
	}
	for _, id := range splitIDList(opts.Show) {
		vis.SetVisible(id, true)
	}
	for _, id := range splitIDList(opts.Hide) {
		vis.SetVisible(id, false)
	}

	dot := preview.ToDOT(m, vis)
	if format == formatDOT {
		return writeOutput(output, []byte(dot))
	}

	store := newPreviewCache(noCache, dir)
	defer store.Close()

	key := cache.PreviewKey(source, vis.Visible(), formatSVG)
	if svg, hit, err := store.Get(ctx, key); err == nil && hit {
		c.Logger.Debug("preview cache hit")
		printStats(len(vis.Visible()), 0, true)
		return writeOutput(output, svg)
	}

	spinner := newSpinner(ctx, "Laying out diagram...")
	spinner.Start()

	svg, err := preview.RenderSVG(ctx, dot)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("render preview: %w", err)
	}
	spinner.Stop()
	printStats(len(vis.Visible()), 0, false)

	if err := store.Set(ctx, key, svg, 0); err != nil {
		c.Logger.Warnf("cache preview: %v", err)
	}

	return writeOutput(output, svg)
}
