package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphcert/alphabound/pkg/errors"
	"github.com/graphcert/alphabound/pkg/graph"
)

// generators maps family names to graph constructors.
var generators = map[string]func(n int) *graph.Graph{
	"empty":    graph.Empty,
	"complete": graph.Complete,
	"path":     graph.Path,
	"cycle":    graph.Cycle,
	"star":     graph.Star,
	"petersen": func(int) *graph.Graph { return graph.Petersen() },
}

// generateCommand creates the generate command for emitting graph6 corpora.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output   string
		min, max int
	)

	cmd := &cobra.Command{
		Use:   "generate [family] [n]",
		Short: "Generate graph6 strings for a named graph family",
		Long: `Generate graph6 strings for a named graph family.

Families: empty, complete, path, cycle, star, petersen.

With an explicit order a single graph is printed. With --min and --max one
graph per order in the range is printed, which makes a quick corpus for the
search command:

  alphabound generate cycle --min 3 --max 12 -o cycles.g6
  alphabound search cycles.g6`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args, min, max, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write graphs to a file instead of stdout")
	cmd.Flags().IntVar(&min, "min", 0, "smallest order in the range")
	cmd.Flags().IntVar(&max, "max", 0, "largest order in the range")

	return cmd
}

func runGenerate(args []string, min, max int, output string) error {
	family := args[0]
	gen, ok := generators[family]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown family %q (must be empty, complete, path, cycle, star, or petersen)", family)
	}

	var orders []int
	switch {
	case family == "petersen":
		orders = []int{10}
	case len(args) == 2:
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "invalid order %q", args[1])
		}
		orders = []int{n}
	case min > 0 && max >= min:
		for n := min; n <= max; n++ {
			orders = append(orders, n)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "give an order argument or a --min/--max range")
	}

	var b strings.Builder
	for _, n := range orders {
		s, err := gen(n).Graph6()
		if err != nil {
			return fmt.Errorf("encode %s(%d): %w", family, n, err)
		}
		b.WriteString(s)
		b.WriteString("\n")
	}

	if output != "" {
		if err := os.WriteFile(output, []byte(b.String()), 0644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Generated %d graphs", len(orders))
		printFile(output)
		printNewline()
		printNextStep("Scan", "alphabound search "+output)
		return nil
	}
	fmt.Print(b.String())
	return nil
}
