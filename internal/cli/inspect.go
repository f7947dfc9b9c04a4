package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbauer/flowview/pkg/flowchart"
)

// inspectCommand creates the inspect command for summarizing a parsed diagram.
func (c *CLI) inspectCommand() *cobra.Command {
	var showDropped bool

	cmd := &cobra.Command{
		Use:   "inspect [diagram.mmd]",
		Short: "Summarize the parsed structure of a diagram",
		Long: `Summarize the parsed structure of a diagram.

Prints the directive, node and edge counts, subgraph membership, class
assignments, and any lines the parser could not interpret. Useful for
checking how a diagram was understood before filtering it.`,
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
			runInspect(source, showDropped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDropped, "dropped", true, "list lines the parser could not interpret")

	return cmd
}

func runInspect(source string, showDropped bool) {
	m := flowchart.Parse(source)

	printKeyValue("directive", m.Directive())
	printKeyValue("nodes", fmt.Sprintf("%d", m.NodeCount()))
	printKeyValue("edges", fmt.Sprintf("%d", m.EdgeCount()))
	printKeyValue("ids", fmt.Sprintf("%d", len(m.KnownIDs())))

	if sgs := m.Subgraphs(); len(sgs) > 0 {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Subgraphs"))
		for _, sg := range sgs {
			printDetail("%s (%d members): %s", sg.ID, len(sg.Members), strings.Join(sg.Members, ", "))
		}
	}

	if edges := m.Edges(); len(edges) > 0 {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Edges"))
		for _, e := range edges {
			printDetail("%s %s %s", e.From, e.Op, e.To)
		}
	}

	if classes := m.ClassAssignments(); len(classes) > 0 {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Classes"))
		for _, ca := range classes {
			printDetail("%s: %s", ca.Name, strings.Join(ca.IDs, ", "))
		}
	}

	// Ids referenced by edges but never declared as nodes.
	var dangling []string
	for _, id := range m.KnownIDs() {
		if _, ok := m.Node(id); !ok {
			dangling = append(dangling, id)
		}
	}
	if len(dangling) > 0 {
		fmt.Println()
		printWarning("%d undeclared id(s): %s", len(dangling), strings.Join(dangling, ", "))
	}

	if dropped := m.Dropped(); showDropped && len(dropped) > 0 {
		fmt.Println()
		printWarning("%d line(s) not understood", len(dropped))
		for _, d := range dropped {
			printDetail("line %d: %s", d.Line, d.Text)
		}
	}
}
