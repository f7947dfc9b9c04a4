package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/hbauer/flowview/pkg/flowchart"
	"github.com/hbauer/flowview/pkg/visibility"
)

// filterOptions collects the visibility operations applied by the filter
// command, in the order they are applied: the full overwrite first, then
// the reachability expansions, then individual shows, then individual hides.
type filterOptions struct {
	HideAll     bool
	ShowAll     bool
	Descendants []string
	Ancestors   []string
	Show        string
	Hide        string
}

// filterCommand creates the filter command for one-shot diagram filtering.
func (c *CLI) filterCommand() *cobra.Command {
	var (
		opts      filterOptions
		output    string
		directive string
		callback  string
	)

	cmd := &cobra.Command{
		Use:   "filter [diagram.mmd]",
		Short: "Apply hide/show operations and print the filtered diagram",
		Long: `Apply hide/show operations and print the filtered diagram.

The diagram is read from the given file, or from stdin when the argument
is "-" or omitted. Operations apply in a fixed order: --hide-all or
--show-all first, then --descendants and --ancestors expansions, then
--show, then --hide. Hidden nodes disappear from the output along with
every edge that touches them; unknown ids in any flag are ignored.

Examples:

  # Focus on everything reachable from the api node
  flowview filter diagram.mmd --hide-all --descendants api

  # Drop two noisy nodes
  flowview filter diagram.mmd --hide legacy,metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			source, err := readInput(input)
			if err != nil {
				return err
			}
			text, err := runFilter(source, opts, flowchart.Renderer{Directive: directive, Callback: callback})
			if err != nil {
				return err
			}
			return writeOutput(output, []byte(text))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.HideAll, "hide-all", false, "start with every node hidden")
	cmd.Flags().BoolVar(&opts.ShowAll, "show-all", false, "start with every node visible")
	cmd.Flags().StringArrayVar(&opts.Descendants, "descendants", nil, "show a node and everything reachable from it (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Ancestors, "ancestors", nil, "show a node and everything that reaches it (repeatable)")
	cmd.Flags().StringVar(&opts.Show, "show", "", "comma-separated node ids to show")
	cmd.Flags().StringVar(&opts.Hide, "hide", "", "comma-separated node ids to hide")
	cmd.Flags().StringVar(&directive, "directive", "", "directive line substituted when the diagram has none")
	cmd.Flags().StringVar(&callback, "callback", "", "click hook callback name")

	return cmd
}

// runFilter parses source, applies the requested operations, and returns
// the regenerated diagram text.
func runFilter(source string, opts filterOptions, r flowchart.Renderer) (string, error) {
	if opts.HideAll && opts.ShowAll {
		return "", errors.New("--hide-all and --show-all are mutually exclusive")
	}

	m := flowchart.Parse(source)
	vis := visibility.New(m)

	var named []string
	named = append(named, opts.Descendants...)
	named = append(named, opts.Ancestors...)
	named = append(named, splitIDList(opts.Show)...)
	named = append(named, splitIDList(opts.Hide)...)
	for _, id := range named {
		if !m.Knows(id) {
			printWarning("unknown node id %q", id)
		}
	}

	if opts.HideAll {
		vis.HideAll()
	}
	if opts.ShowAll {
		vis.ShowAll()
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

	return r.Render(m, vis), nil
}
