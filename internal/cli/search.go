package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/graphcert/alphabound/pkg/cache"
	"github.com/graphcert/alphabound/pkg/graph"
	"github.com/graphcert/alphabound/pkg/pipeline"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	output  string // file to write difficult graphs to (graph6, one per line)
	limit   int    // stop after this many difficult graphs (0 = no limit)
	noCache bool   // disable caching
	plain   bool   // log progress instead of the interactive display
}

// searchCommand creates the search command for scanning graph corpora.
func (c *CLI) searchCommand() *cobra.Command {
	opts := searchOpts{}

	cmd := &cobra.Command{
		Use:   "search [corpus]",
		Short: "Scan a graph6 corpus for difficult graphs",
		Long: `Scan a graph6 corpus for difficult graphs.

The corpus is a text file with one graph6 string per line. Blank lines and
lines starting with '#' are skipped. Each graph is classified in turn, and
the graphs whose bounds leave a gap are reported as difficult.

Difficult graphs are printed to stdout (or written to --output), so the
command composes with shell pipelines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write difficult graphs to a file instead of stdout")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "stop after finding this many difficult graphs")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "log progress instead of the interactive display")

	return cmd
}

// runSearch classifies every graph in the corpus and reports the difficult ones.
func (c *CLI) runSearch(ctx context.Context, input string, opts searchOpts) error {
	lines, err := readCorpus(input)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		printInfo("Corpus is empty")
		return nil
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Corpus scans keep their cache entries in a per-corpus namespace.
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, corpusScope(input))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var difficult []string
	var scanErr error
	if opts.plain {
		difficult, scanErr = c.scanPlain(ctx, runner, lines, opts.limit)
	} else {
		difficult, scanErr = c.scanInteractive(ctx, runner, lines, opts.limit, cancel)
	}
	if scanErr != nil && !errors.Is(scanErr, context.Canceled) {
		return scanErr
	}

	if errors.Is(scanErr, context.Canceled) {
		printWarning("Search interrupted")
	}
	printSuccess("Search complete")
	printDetail("%d graphs scanned, %d difficult", len(lines), len(difficult))

	if opts.output != "" {
		data := strings.Join(difficult, "\n")
		if len(difficult) > 0 {
			data += "\n"
		}
		if err := os.WriteFile(opts.output, []byte(data), 0644); err != nil {
			return fmt.Errorf("write output %s: %w", opts.output, err)
		}
		printFile(opts.output)
		return scanErr
	}
	for _, line := range difficult {
		fmt.Println(line)
	}
	return scanErr
}

// scanPlain runs the scan with logger progress only.
func (c *CLI) scanPlain(ctx context.Context, runner *pipeline.Runner, lines []string, limit int) ([]string, error) {
	prog := newProgress(c.Logger)
	difficult, err := c.scanCorpus(ctx, runner, lines, limit, func(ev searchEvent) {
		switch {
		case ev.skipped:
			c.Logger.Warn("skipping graph", "graph6", ev.line)
		case ev.difficult:
			c.Logger.Info("difficult graph found", "graph6", ev.line)
		default:
			c.Logger.Debug("graph settled", "graph6", ev.line)
		}
	})
	prog.done(fmt.Sprintf("Classified %d graphs", len(lines)))
	return difficult, err
}

// scanInteractive runs the scan behind a bubbletea progress display.
func (c *CLI) scanInteractive(ctx context.Context, runner *pipeline.Runner, lines []string, limit int, cancel context.CancelFunc) ([]string, error) {
	p := tea.NewProgram(newSearchModel(len(lines), cancel), tea.WithOutput(os.Stderr))

	var difficult []string
	errCh := make(chan error, 1)
	go func() {
		var err error
		difficult, err = c.scanCorpus(ctx, runner, lines, limit, func(ev searchEvent) {
			p.Send(ev)
		})
		errCh <- err
		p.Send(searchFinished{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-errCh
		return difficult, err
	}
	return difficult, <-errCh
}

// scanCorpus is the shared scan loop. The report callback fires once per
// corpus line, after its classification settles.
func (c *CLI) scanCorpus(ctx context.Context, runner *pipeline.Runner, lines []string, limit int, report func(searchEvent)) ([]string, error) {
	var difficult []string
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return difficult, err
		}

		ev := searchEvent{line: line}
		g, err := graph.ParseGraph6(line)
		if err != nil {
			ev.skipped = true
			report(ev)
			continue
		}

		result, err := runner.Classify(ctx, g, pipeline.Options{Logger: c.Logger})
		if err != nil {
			if ctx.Err() != nil {
				return difficult, ctx.Err()
			}
			ev.skipped = true
			report(ev)
			continue
		}

		if result.Verdict.IsDifficult {
			ev.difficult = true
			difficult = append(difficult, line)
		}
		report(ev)

		if limit > 0 && len(difficult) >= limit {
			break
		}
	}
	return difficult, nil
}

// readCorpus reads a graph6 corpus file, skipping blanks and comments.
func readCorpus(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return lines, nil
}

// corpusScope derives the cache key prefix for a corpus file from its
// base name, so scans of the same corpus share cached reports regardless
// of the directory it was read from.
func corpusScope(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "corpus:" + base + ":"
}

// =============================================================================
// SearchModel - Progress display
// =============================================================================

// searchEvent reports one classified corpus line to the display.
type searchEvent struct {
	line      string
	difficult bool
	skipped   bool
}

// searchFinished signals that the scan goroutine has returned.
type searchFinished struct{}

// searchBarWidth is the character width of the progress bar.
const searchBarWidth = 30

// searchModel is the bubbletea model for the corpus scan display.
type searchModel struct {
	total     int
	processed int
	difficult int
	skipped   int
	current   string
	cancel    context.CancelFunc
}

// newSearchModel creates a search progress model. The cancel func stops
// the scan goroutine when the user quits.
func newSearchModel(total int, cancel context.CancelFunc) searchModel {
	return searchModel{total: total, cancel: cancel}
}

func (m searchModel) Init() tea.Cmd {
	return nil
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, nil
		}
	case searchEvent:
		m.processed++
		m.current = msg.line
		if msg.difficult {
			m.difficult++
		}
		if msg.skipped {
			m.skipped++
		}
		return m, nil
	case searchFinished:
		return m, tea.Quit
	}
	return m, nil
}

func (m searchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Searching corpus"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	filled := 0
	if m.total > 0 {
		filled = m.processed * searchBarWidth / m.total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", searchBarWidth-filled)
	b.WriteString("  " + StyleHighlight.Render(bar))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d/%d", m.processed, m.total)))
	b.WriteString("\n\n")

	b.WriteString("  " + StyleNumber.Render(fmt.Sprintf("%d", m.difficult)) + StyleDim.Render(" difficult"))
	if m.skipped > 0 {
		b.WriteString(StyleDim.Render(" · ") + StyleWarning.Render(fmt.Sprintf("%d", m.skipped)) + StyleDim.Render(" skipped"))
	}
	b.WriteString("\n")
	if m.current != "" {
		b.WriteString("  " + StyleDim.Render("current: ") + StyleValue.Render(m.current))
		b.WriteString("\n")
	}

	return b.String()
}
