package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// VarsKey is the reserved context name under which initial variables are
// committed before the first step, making "$vars.name" references work.
const VarsKey = "vars"

// State is the lifecycle of a Runner.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// RunResult records a pipeline execution: all committed step outputs
// and, on failure, the failing step and its error. Outputs committed
// before a failure are never discarded; Partial marks such results.
type RunResult struct {
	Pipeline   string
	Outputs    map[string]map[string]any
	FailedStep string
	Err        error
	Partial    bool
	Started    time.Time
	Completed  time.Time
}

// Runner executes one pipeline exactly once: resolve a step's inputs
// against the context, invoke its action, commit the output, advance.
// The first failure halts the run; completed actions are never rolled
// back. Each runner owns a fresh execution context, so concurrent runs
// of the same pipeline through separate runners share no mutable state.
type Runner struct {
	pipeline    *Pipeline
	ec          *ExecutionContext
	state       State
	stepTimeout time.Duration
	vars        map[string]any
	logger      *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithStepTimeout bounds each action invocation. An exceeded timeout is
// treated as a failure of that step with ErrStepTimeout.
func WithStepTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) { r.stepTimeout = d }
}

// WithVars seeds the execution context with initial variables under the
// reserved name "vars" before the first step runs.
func WithVars(vars map[string]any) RunnerOption {
	return func(r *Runner) { r.vars = vars }
}

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner creates a runner for one execution of p.
func NewRunner(p *Pipeline, opts ...RunnerOption) *Runner {
	r := &Runner{
		pipeline: p,
		ec:       NewExecutionContext(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State reports the runner's lifecycle state.
func (r *Runner) State() State { return r.state }

// Run executes the pipeline to completion or first failure. On failure
// the returned result is non-nil and carries every output committed
// before the failure, the failing step's name, and the error, which is
// also returned. A runner cannot be reused; a second call returns
// ErrAlreadyRun.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	if r.state != StateNotStarted {
		return nil, ErrAlreadyRun
	}
	r.state = StateRunning

	result := &RunResult{
		Pipeline: r.pipeline.Name(),
		Started:  time.Now(),
	}

	if len(r.vars) > 0 {
		if r.pipeline.hasStep(VarsKey) {
			return r.fail(result, VarsKey, fmt.Errorf("step name %q is reserved when variables are set", VarsKey))
		}
		if err := r.ec.Commit(VarsKey, r.vars); err != nil {
			return r.fail(result, VarsKey, err)
		}
	}

	steps := r.pipeline.Steps()
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return r.fail(result, step.Name(), fmt.Errorf("%w: %v", ErrCancelled, err))
		}

		r.logger.Info("running step",
			"pipeline", r.pipeline.Name(),
			"step", step.Name(),
			"action", step.ActionName(),
			"position", fmt.Sprintf("%d/%d", i+1, len(steps)))

		inputs, err := step.resolveInputs(r.ec)
		if err != nil {
			return r.fail(result, step.Name(), fmt.Errorf("resolving inputs: %w", err))
		}

		output, err := r.invoke(ctx, step, inputs)
		if err != nil {
			return r.fail(result, step.Name(), err)
		}

		// Commit before the next step resolves: a reference to this
		// step must always observe its complete output.
		if output == nil {
			output = map[string]any{}
		}
		if err := r.ec.Commit(step.Name(), output); err != nil {
			return r.fail(result, step.Name(), err)
		}

		r.logger.Debug("step complete", "pipeline", r.pipeline.Name(), "step", step.Name())
	}

	r.state = StateCompleted
	result.Outputs = r.ec.Outputs()
	result.Completed = time.Now()
	r.logger.Info("pipeline complete", "pipeline", r.pipeline.Name(), "steps", len(steps))
	return result, nil
}

// invoke calls the step's action, applying the per-step timeout when
// configured. This is the engine's single suspension point.
func (r *Runner) invoke(ctx context.Context, step *Step, inputs map[string]any) (map[string]any, error) {
	actionCtx := ctx
	if r.stepTimeout > 0 {
		var cancel context.CancelFunc
		actionCtx, cancel = context.WithTimeout(ctx, r.stepTimeout)
		defer cancel()
	}

	output, err := step.action.Invoke(actionCtx, inputs)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded) && r.stepTimeout > 0 && ctx.Err() == nil:
			err = fmt.Errorf("%w after %s: %v", ErrStepTimeout, r.stepTimeout, err)
		case errors.Is(err, context.Canceled):
			err = fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		return nil, fmt.Errorf("action %q: %w", step.ActionName(), err)
	}
	return output, nil
}

func (r *Runner) fail(result *RunResult, stepName string, err error) (*RunResult, error) {
	r.state = StateFailed
	wrapped := fmt.Errorf("step %q: %w", stepName, err)

	result.Outputs = r.ec.Outputs()
	result.FailedStep = stepName
	result.Err = wrapped
	result.Partial = true
	result.Completed = time.Now()

	r.logger.Error("pipeline failed",
		"pipeline", r.pipeline.Name(),
		"step", stepName,
		"error", err,
		"committed", r.ec.Len())
	return result, wrapped
}
