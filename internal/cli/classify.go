package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphcert/alphabound/pkg/pipeline"
)

// classifyCommand creates the classify command for single graphs.
func (c *CLI) classifyCommand() *cobra.Command {
	var (
		file       string
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "classify [graph6]",
		Short: "Classify a graph and report independence number bounds",
		Long: `Classify a graph and report independence number bounds.

The graph is given either as a graph6 string argument or via --file, which
accepts a graph6 line or a JSON graph document. Every registered lower bound,
upper bound, and alpha property is evaluated; the graph is difficult when no
property settles it and the rounded bounds leave a gap.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Formats: parseFormats(formatsStr), Refresh: refresh}
			if len(args) == 1 {
				opts.Graph6 = args[0]
			}
			if file != "" {
				if err := loadGraphInput(file, &opts); err != nil {
					return err
				}
			}
			return c.runClassify(cmd.Context(), opts, file, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "i", "", "read the graph from a file (graph6 line or JSON document)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text (default), json, dot, svg, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when a cached report exists")

	return cmd
}

// runClassify executes the full classify pipeline and prints the verdict.
func (c *CLI) runClassify(ctx context.Context, opts pipeline.Options, input, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Evaluating bounds...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Classification failed")
		return err
	}
	spinner.Stop()

	cls := result.Classification
	printSuccess("Classification complete")
	printVerdict(cls.Verdict.IsDifficult, cls.Verdict.Reason)
	if cls.Report != nil {
		printDetail("bounds: %d <= alpha <= %d", cls.Report.Lower, cls.Report.Upper)
	}
	if cls.Verdict.Property != "" {
		printDetail("alpha property: %s", cls.Verdict.Property)
	}
	if len(cls.UMCIS) > 0 {
		printDetail("critical set union: %v", cls.UMCIS)
	}
	printStats(cls.Order, cls.Size, result.CacheInfo.ReportHit)

	// A lone text certificate goes to stdout unless a path was asked for.
	if output == "" && len(opts.Formats) == 1 && opts.Formats[0] == pipeline.FormatText {
		printNewline()
		fmt.Print(string(result.Artifacts[pipeline.FormatText]))
		return nil
	}
	return writeArtifacts(result.Artifacts, opts.Formats, output, input)
}

// loadGraphInput reads a graph file into opts, detecting JSON documents
// by their leading brace.
func loadGraphInput(path string, opts *pipeline.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read graph %s: %w", path, err)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		opts.Graph = []byte(trimmed)
		return nil
	}
	line, _, _ := strings.Cut(trimmed, "\n")
	opts.Graph6 = strings.TrimSpace(line)
	return nil
}

// artifactExts maps formats to file extensions.
var artifactExts = map[string]string{
	pipeline.FormatJSON: "json",
	pipeline.FormatText: "txt",
	pipeline.FormatDOT:  "dot",
	pipeline.FormatSVG:  "svg",
	pipeline.FormatPNG:  "png",
}

// writeArtifacts writes rendered certificate artifacts to disk. A single
// format with an explicit output path is written verbatim; otherwise each
// format gets its own extension on the base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) error {
	if len(formats) == 1 && output != "" {
		if err := os.WriteFile(output, artifacts[formats[0]], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
		return nil
	}

	base := output
	if base == "" {
		base = "certificate"
		if input != "" {
			base = strings.TrimSuffix(input, filepath.Ext(input))
		}
	}
	for _, format := range formats {
		path := base + "." + artifactExts[format]
		if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
