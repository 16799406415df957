package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPlotHooks{}
	p.OnPlotStart(ctx, "run", "Line", 10)
	p.OnPlotComplete(ctx, "run", 10, time.Second, nil)
	p.OnFigureWritten(ctx, "run", "out/plot.pdf", 2)

	e := NoopExperimentHooks{}
	e.OnConfigBuilt(ctx, 3, 12, time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Plot().(NoopPlotHooks); !ok {
		t.Error("Plot() should return NoopPlotHooks by default")
	}
	if _, ok := Experiment().(NoopExperimentHooks); !ok {
		t.Error("Experiment() should return NoopExperimentHooks by default")
	}

	customPlot := &testPlotHooks{}
	SetPlotHooks(customPlot)
	if Plot() != customPlot {
		t.Error("SetPlotHooks should set custom hooks")
	}

	customExp := &testExperimentHooks{}
	SetExperimentHooks(customExp)
	if Experiment() != customExp {
		t.Error("SetExperimentHooks should set custom hooks")
	}

	// nil is ignored
	SetPlotHooks(nil)
	if Plot() != customPlot {
		t.Error("SetPlotHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Plot().(NoopPlotHooks); !ok {
		t.Error("Reset() should restore NoopPlotHooks")
	}
	if _, ok := Experiment().(NoopExperimentHooks); !ok {
		t.Error("Reset() should restore NoopExperimentHooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	defer Reset()

	h := &testPlotHooks{}
	SetPlotHooks(h)

	ctx := context.Background()
	Plot().OnPlotStart(ctx, "run", "BarStacked", 4)
	Plot().OnFigureWritten(ctx, "run", "a.pdf", 1)
	Plot().OnFigureWritten(ctx, "run", "b.pdf", 1)
	Plot().OnPlotComplete(ctx, "run", 4, time.Second, nil)

	if h.starts != 1 || h.figures != 2 || h.completes != 1 {
		t.Errorf("events = %d/%d/%d, want 1/2/1", h.starts, h.figures, h.completes)
	}
}

type testPlotHooks struct {
	starts, figures, completes int
}

func (h *testPlotHooks) OnPlotStart(context.Context, string, string, int) { h.starts++ }
func (h *testPlotHooks) OnPlotComplete(context.Context, string, int, time.Duration, error) {
	h.completes++
}
func (h *testPlotHooks) OnFigureWritten(context.Context, string, string, int) { h.figures++ }

type testExperimentHooks struct{}

func (testExperimentHooks) OnConfigBuilt(context.Context, int, int, time.Duration, error) {}
