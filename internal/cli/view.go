package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hbauer/flowview/pkg/flowchart"
	"github.com/hbauer/flowview/pkg/visibility"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command for interactive node toggling.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		output    string
		directive string
		callback  string
	)

	cmd := &cobra.Command{
		Use:   "view [diagram.mmd]",
		Short: "Browse and toggle nodes interactively in the terminal",
		Long: `Browse and toggle nodes interactively in the terminal.

Every node of the diagram is listed with a checkbox reflecting its
visibility. Toggling, show-all/hide-all, and reachability expansion from
the cursor node are available as single keystrokes. Accepting the
selection prints the filtered diagram; quitting discards it.

Keys:
  up/down, k/j   move the cursor
  space          toggle the node under the cursor
  a              show all nodes
  n              hide all nodes
  d              show the cursor node and its descendants
  u              show the cursor node and its ancestors
  enter          accept and print the filtered diagram
  q, esc         quit without printing`,
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
			return c.runView(source, output, flowchart.Renderer{Directive: directive, Callback: callback})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&directive, "directive", "", "directive line substituted when the diagram has none")
	cmd.Flags().StringVar(&callback, "callback", "", "click hook callback name")

	return cmd
}

func (c *CLI) runView(source, output string, r flowchart.Renderer) error {
	m := flowchart.Parse(source)
	if len(m.KnownIDs()) == 0 {
		return fmt.Errorf("diagram has no nodes")
	}

	model := newNodeListModel(m)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}

	result, ok := final.(nodeListModel)
	if !ok || !result.Accepted {
		c.Logger.Debug("selection discarded")
		return nil
	}

	return writeOutput(output, []byte(r.Render(m, result.Vis)))
}

// =============================================================================
// NodeListModel - Interactive node visibility toggling
// =============================================================================

// nodeListModel is the bubbletea model for the node checkbox list.
type nodeListModel struct {
	Model    *flowchart.Model
	Vis      *visibility.State
	IDs      []string
	Cursor   int
	Height   int
	Offset   int
	Accepted bool
}

func newNodeListModel(m *flowchart.Model) nodeListModel {
	return nodeListModel{
		Model:  m,
		Vis:    visibility.New(m),
		IDs:    m.KnownIDs(),
		Height: 15,
	}
}

func (m nodeListModel) Init() tea.Cmd {
	return nil
}

func (m nodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.IDs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			id := m.IDs[m.Cursor]
			m.Vis.SetVisible(id, !m.Vis.IsVisible(id))
		case "a":
			m.Vis.ShowAll()
		case "n":
			m.Vis.HideAll()
		case "d":
			m.Vis.ShowDescendants(m.IDs[m.Cursor])
		case "u":
			m.Vis.ShowAncestors(m.IDs[m.Cursor])
		case "enter":
			m.Accepted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m nodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Toggle Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("space toggle  a all  n none  d descendants  u ancestors  ⏎ accept  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.IDs) {
		end = len(m.IDs)
	}

	for i := m.Offset; i < end; i++ {
		id := m.IDs[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		box := "[ ]"
		if m.Vis.IsVisible(id) {
			box = "[" + StyleSuccess.Render("x") + "]"
		}

		label := ""
		if n, ok := m.Model.Node(id); ok && n.Label != id {
			label = "  " + listDimStyle.Render(n.Label)
		}

		line := fmt.Sprintf("%s%s %s%s", cursor, box, id, label)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.Vis.IsVisible(id) {
			b.WriteString(listNormalStyle.Render(line))
		} else {
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d visible", m.Cursor+1, len(m.IDs), len(m.Vis.Visible()))))

	return b.String()
}
