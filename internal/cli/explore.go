package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/regexrail/pkg/ast"
	"github.com/matzehuels/regexrail/pkg/parse"
	"github.com/matzehuels/regexrail/pkg/pipeline"
	"github.com/matzehuels/regexrail/pkg/railroad"
	"github.com/matzehuels/regexrail/pkg/render/sink"
)

// Explorer styles
var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTrack)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorFail)
	hintStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

const promptText = "› "

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "explore [pattern]",
		Short: "Edit a pattern and watch its diagram update",
		Long: `Edit a pattern interactively. Every keystroke re-parses and re-lays out
the pattern, showing either the syntax error or a summary of the diagram.
Enter saves the diagram as SVG and quits; Esc quits without saving.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := ""
			if len(args) == 1 {
				initial = args[0]
			}
			return c.runExplore(cmd.Context(), initial, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "explore.svg", "file written on enter")

	return cmd
}

func (c *CLI) runExplore(ctx context.Context, initial, output string) error {
	m, err := pipeline.NewMeasurer(c.Config.Render.Metrics, c.Config.Theme.FontSize)
	if err != nil {
		return err
	}
	model := newExploreModel(railroad.New(c.Config.Theme, m), output, initial)

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	if em, ok := final.(exploreModel); ok && em.saved != "" {
		printSuccess("Saved %s", describe(pipeline.Options{Pattern: em.pattern()}))
		printFile(em.saved)
	}
	return nil
}

// =============================================================================
// exploreModel - Interactive pattern editing
// =============================================================================

// exploreModel is the bubbletea model of the explorer. It keeps the pattern
// as runes so the cursor and error caret line up with what is displayed.
type exploreModel struct {
	engine *railroad.Engine
	canvas *sink.SVGCanvas
	output string

	input  []rune
	cursor int

	nodes   []ast.Node
	diagram *railroad.Diagram
	err     error
	errPos  int // rune offset of a syntax error, -1 when unknown

	saved string
}

func newExploreModel(engine *railroad.Engine, output, initial string) exploreModel {
	m := exploreModel{
		engine: engine,
		canvas: sink.NewSVGCanvas(),
		output: output,
		input:  []rune(initial),
		errPos: -1,
	}
	m.cursor = len(m.input)
	m.refresh()
	return m
}

func (m exploreModel) pattern() string { return string(m.input) }

// refresh redraws the current pattern onto the canvas.
func (m *exploreModel) refresh() {
	m.nodes, m.diagram, m.err, m.errPos = nil, nil, nil, -1

	var nodes []ast.Node
	parsed := false
	p := railroad.ParserFunc(func(source string) ([]ast.Node, error) {
		var err error
		nodes, err = parse.Parse(source)
		parsed = err == nil
		return nodes, err
	})
	if err := m.engine.Draw(m.canvas, m.pattern(), p); err != nil {
		m.err = err
		var perr *parse.Error
		if stderrors.As(err, &perr) {
			m.errPos = perr.Pos
		}
		return
	}
	// An empty pattern leaves the canvas cleared.
	if parsed {
		m.nodes, m.diagram = nodes, m.canvas.Diagram()
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		if m.diagram == nil {
			return m, nil
		}
		if err := writeFile(m.output, m.canvas.Bytes(sink.WithTitle(m.pattern()))); err != nil {
			m.err = err
			return m, nil
		}
		m.saved = m.output
		return m, tea.Quit
	case tea.KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyRight:
		if m.cursor < len(m.input) {
			m.cursor++
		}
		return m, nil
	case tea.KeyHome, tea.KeyCtrlA:
		m.cursor = 0
		return m, nil
	case tea.KeyEnd, tea.KeyCtrlE:
		m.cursor = len(m.input)
		return m, nil
	case tea.KeyBackspace:
		if m.cursor == 0 {
			return m, nil
		}
		m.input = append(m.input[:m.cursor-1:m.cursor-1], m.input[m.cursor:]...)
		m.cursor--
	case tea.KeyDelete:
		if m.cursor == len(m.input) {
			return m, nil
		}
		m.input = append(m.input[:m.cursor:m.cursor], m.input[m.cursor+1:]...)
	case tea.KeyCtrlU:
		m.input = m.input[m.cursor:]
		m.cursor = 0
	case tea.KeyRunes, tea.KeySpace:
		runes := key.Runes
		if key.Type == tea.KeySpace && len(runes) == 0 {
			runes = []rune{' '}
		}
		m.input = insertRunes(m.input, m.cursor, runes)
		m.cursor += len(runes)
	default:
		return m, nil
	}

	m.refresh()
	return m, nil
}

// insertRunes returns s with r inserted at i. s is not modified.
func insertRunes(s []rune, i int, r []rune) []rune {
	out := make([]rune, 0, len(s)+len(r))
	out = append(out, s[:i]...)
	out = append(out, r...)
	return append(out, s[i:]...)
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("regexrail explore"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("type a pattern  ⏎ save " + m.output + "  esc quit"))
	b.WriteString("\n\n")

	b.WriteString(promptStyle.Render(promptText))
	b.WriteString(m.inputView())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		if m.errPos >= 0 {
			b.WriteString(errorStyle.Render(caretLine(m.errPos)))
			b.WriteString("\n")
		}
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.diagram != nil:
		b.WriteString("\n")
		b.WriteString(m.summaryTable())
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d primitives · %sx%s px",
			len(m.diagram.Items),
			railroad.FormatFloat(m.diagram.Width),
			railroad.FormatFloat(m.diagram.Height))))
		b.WriteString("\n")
	}
	return b.String()
}

// inputView renders the pattern with the cursor cell highlighted.
func (m exploreModel) inputView() string {
	before := string(m.input[:m.cursor])
	if m.cursor == len(m.input) {
		return before + cursorStyle.Render(" ")
	}
	return before + cursorStyle.Render(string(m.input[m.cursor])) + string(m.input[m.cursor+1:])
}

// caretLine points at rune offset pos of the pattern shown after the prompt.
func caretLine(pos int) string {
	return strings.Repeat(" ", lipgloss.Width(promptText)+pos) + "^"
}

// summaryTable counts the nodes of the tree by kind.
func (m exploreModel) summaryTable() string {
	counts := ast.Count(m.nodes)
	var rows [][]string
	for _, k := range ast.Kinds {
		if n := counts[k]; n > 0 {
			rows = append(rows, []string{string(k), strconv.Itoa(n)})
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorSubtle).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Kind", "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorTrack).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle().Foreground(colorValue)
		})
	return t.Render()
}
