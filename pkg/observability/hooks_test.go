package observability

import (
	"context"
	"testing"
	"time"
)

type recordingEvaluationHooks struct {
	started, completed int
}

func (r *recordingEvaluationHooks) OnClassifyStart(context.Context, int, int)                      {}
func (r *recordingEvaluationHooks) OnClassifyComplete(context.Context, bool, time.Duration, error) {}
func (r *recordingEvaluationHooks) OnEntryStart(context.Context, string, string) {
	r.started++
}
func (r *recordingEvaluationHooks) OnEntryComplete(context.Context, string, string, float64, time.Duration, error) {
	r.completed++
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Evaluation().OnEntryStart(ctx, "residue", "lower")
	Evaluation().OnEntryComplete(ctx, "residue", "lower", 2, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "report")
	API().OnRequest(ctx, "POST", "/v1/classify")
}

func TestSetEvaluationHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingEvaluationHooks{}
	SetEvaluationHooks(rec)

	ctx := context.Background()
	Evaluation().OnEntryStart(ctx, "residue", "lower")
	Evaluation().OnEntryComplete(ctx, "residue", "lower", 2, time.Millisecond, nil)

	if rec.started != 1 || rec.completed != 1 {
		t.Errorf("got started=%d completed=%d, want 1 and 1", rec.started, rec.completed)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &recordingEvaluationHooks{}
	SetEvaluationHooks(rec)
	SetEvaluationHooks(nil)

	Evaluation().OnEntryStart(context.Background(), "residue", "lower")
	if rec.started != 1 {
		t.Errorf("got started=%d, want 1", rec.started)
	}
}
