package cli

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/graphcert/alphabound/pkg/cache"
	"github.com/graphcert/alphabound/pkg/pipeline"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.g6")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCorpus(t *testing.T) {
	path := writeCorpus(t, "# cycles\nBw\n\n  Dhc\n")

	lines, err := readCorpus(path)
	if err != nil {
		t.Fatalf("readCorpus() error: %v", err)
	}
	want := []string{"Bw", "Dhc"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("readCorpus() = %v, want %v", lines, want)
	}
}

func TestReadCorpusMissingFile(t *testing.T) {
	if _, err := readCorpus(filepath.Join(t.TempDir(), "nope.g6")); err == nil {
		t.Error("readCorpus() should fail on a missing file")
	}
}

func TestScanCorpusSkipsMalformedLines(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	runner := pipeline.NewRunner(nil, nil, c.Logger, nil)
	defer runner.Close()

	lines := []string{"Bw", "not graph6 \x01", "BW"}

	var events []searchEvent
	difficult, err := c.scanCorpus(context.Background(), runner, lines, 0, func(ev searchEvent) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("scanCorpus() error: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if !events[1].skipped {
		t.Error("malformed line should be reported as skipped")
	}
	// K3 has a dominating vertex, and P3 bounds converge at 2.
	if len(difficult) != 0 {
		t.Errorf("difficult = %v, want none", difficult)
	}
}

func TestScanCorpusHonorsCancellation(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	runner := pipeline.NewRunner(nil, nil, c.Logger, nil)
	defer runner.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.scanCorpus(ctx, runner, []string{"Bw"}, 0, func(searchEvent) {})
	if err == nil {
		t.Error("scanCorpus() should return the context error after cancellation")
	}
}

func TestSearchModelCountsEvents(t *testing.T) {
	m := newSearchModel(3, func() {})

	next, _ := m.Update(searchEvent{line: "Bw"})
	next, _ = next.Update(searchEvent{line: "Dhc", difficult: true})
	next, _ = next.Update(searchEvent{line: "??", skipped: true})

	got := next.(searchModel)
	if got.processed != 3 || got.difficult != 1 || got.skipped != 1 {
		t.Errorf("model counts = %d/%d/%d, want 3/1/1", got.processed, got.difficult, got.skipped)
	}

	view := got.View()
	if !strings.Contains(view, "3/3") {
		t.Errorf("view should show progress fraction, got:\n%s", view)
	}
	if !strings.Contains(view, "difficult") {
		t.Errorf("view should show difficult count, got:\n%s", view)
	}
}

func TestSearchModelQuitsWhenFinished(t *testing.T) {
	m := newSearchModel(1, func() {})

	_, cmd := m.Update(searchFinished{})
	if cmd == nil {
		t.Fatal("searchFinished should produce a quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("cmd() = %#v, want tea.QuitMsg", msg)
	}
}

func TestCorpusScope(t *testing.T) {
	scope := corpusScope("/data/corpora/order9.g6")
	if scope != "corpus:order9:" {
		t.Errorf("corpusScope = %q, want %q", scope, "corpus:order9:")
	}

	keyer := cache.NewScopedKeyer(nil, scope)
	key := keyer.ReportKey("abc", cache.ReportKeyOpts{})
	if !strings.HasPrefix(key, "corpus:order9:") {
		t.Errorf("report key %q not scoped to the corpus", key)
	}
}

func TestSearchModelCancelOnQuitKey(t *testing.T) {
	cancelled := false
	m := newSearchModel(1, func() { cancelled = true })

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled {
		t.Error("ctrl+c should cancel the scan")
	}
}
