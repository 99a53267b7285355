package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/registerwatch/registerscan/internal/model"
)

// recordingStep records whether it ran and optionally fails.
type recordingStep struct {
	name string
	err  error
	ran  bool
}

func (s *recordingStep) Do(_ context.Context, _ *model.CrawlReport) error {
	s.ran = true
	return s.err
}

func (s *recordingStep) Name() string { return s.name }

// TestPipelineExecute tests step sequencing and error handling.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("runs steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		mkStep := func(name string) Step {
			return stepFunc{name: name, fn: func() error {
				order = append(order, name)
				return nil
			}}
		}

		p := New()
		p.AddSteps(mkStep("first"), mkStep("second"), mkStep("third"))

		if err := p.Execute(context.Background(), model.NewCrawlReport("2023-06-12", nil)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(order) != 3 || order[0] != "first" || order[2] != "third" {
			t.Errorf("unexpected execution order: %v", order)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		failure := errors.New("step failed")
		failing := &recordingStep{name: "failing", err: failure}
		after := &recordingStep{name: "after"}

		p := New()
		p.AddSteps(failing, after)

		if err := p.Execute(context.Background(), model.NewCrawlReport("2023-06-12", nil)); !errors.Is(err, failure) {
			t.Fatalf("expected step error, got %v", err)
		}
		if after.ran {
			t.Error("expected pipeline to stop before the second step")
		}
	})

	t.Run("continue on error runs remaining steps and keeps first error", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first failure")
		second := errors.New("second failure")
		after := &recordingStep{name: "after"}

		p := New(WithContinueOnError(true))
		p.AddSteps(
			&recordingStep{name: "one", err: first},
			&recordingStep{name: "two", err: second},
			after,
		)

		if err := p.Execute(context.Background(), model.NewCrawlReport("2023-06-12", nil)); !errors.Is(err, first) {
			t.Fatalf("expected first error, got %v", err)
		}
		if !after.ran {
			t.Error("expected remaining steps to run")
		}
	})

	t.Run("respects cancellation between steps", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		first := stepFunc{name: "cancelling", fn: func() error {
			cancel()
			return nil
		}}
		after := &recordingStep{name: "after"}

		p := New()
		p.AddSteps(first, after)

		if err := p.Execute(ctx, model.NewCrawlReport("2023-06-12", nil)); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if after.ran {
			t.Error("expected cancellation to stop the pipeline")
		}
	})
}

// stepFunc adapts a closure to the Step interface.
type stepFunc struct {
	name string
	fn   func() error
}

func (s stepFunc) Do(_ context.Context, _ *model.CrawlReport) error { return s.fn() }
func (s stepFunc) Name() string                                     { return s.name }
