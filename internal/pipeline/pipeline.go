package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/signboard/internal/model"
)

// Step is one stage of a load.
type Step interface {
	// Do executes the step against the snapshot.
	// Failures that end the load return an error; the step records the
	// matching status on the snapshot before returning.
	Do(ctx context.Context, snap *model.Snapshot) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline runs steps in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError keeps running later steps after a failure.
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to run every step even when
// one fails. The error is still recorded on the snapshot.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence. Cancellation is checked before each
// step; a cancelled load marks the snapshot as timed out.
//
// It returns the first step error unless continueOnError is set.
func (p *Pipeline) Execute(ctx context.Context, snap *model.Snapshot) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"source", snap.Source,
				"reason", ctx.Err(),
			)
			snap.TimedOut = true
			if snap.Status == model.StatusPending {
				snap.SetError(model.StatusTransportError, ctx.Err())
			}
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"source", snap.Source,
		)

		if err := step.Do(ctx, snap); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", snap.Source,
				"error", err,
			)

			snap.Error = err
			snap.ErrorMessage = err.Error()

			if !p.continueOnError {
				return err
			}
		} else {
			p.logger.Debug("step completed",
				"step", step.Name(),
				"source", snap.Source,
			)
		}

		snap.PerformedSteps = append(snap.PerformedSteps, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
