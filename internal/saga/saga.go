// Package saga runs an ordered list of steps and, when one fails, undoes
// the completed ones in reverse order.
package saga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/kingrain94/tenancy-api/pkg/logger"
)

// State is the position of a run. Callers name the states reached by their
// steps; the terminal failure states are shared.
type State string

const (
	StateCompensating        State = "compensating"
	StateRolledBack          State = "rolled_back"
	StatePartiallyRolledBack State = "partially_rolled_back"
)

var (
	// ErrStepTimeout is returned when a step does not finish before the
	// run's deadline.
	ErrStepTimeout = errors.New("saga step timed out")

	// ErrOutcomeUnknown marks a step that was abandoned at the deadline and
	// had still not returned when compensation gave up waiting for it.
	ErrOutcomeUnknown = errors.New("saga step outcome unknown")

	errStepPanicked = errors.New("saga step panicked")
)

// lateStepWait bounds the wait for an abandoned step when no
// CompensationTimeout is configured.
const lateStepWait = 15 * time.Second

// Step is one unit of work and the action that undoes it.
type Step struct {
	Name string

	// Reached is the state recorded once Action succeeds. Empty keeps
	// the current state.
	Reached State

	Action func(ctx context.Context) error

	// Compensate may be nil for steps without side effects. It is only
	// called if Action succeeded.
	Compensate func(ctx context.Context) error

	// Artifact describes what Action left behind, for orphan reports
	Artifact func() string
}

type Config struct {
	Name                string
	Initial             State
	Timeout             time.Duration
	CompensationTimeout time.Duration
}

// Result describes a finished run.
type Result struct {
	State      State
	Completed  []string
	FailedStep string
	Cause      error

	// CompensationErr aggregates failed compensations. Uncompensated names
	// their steps and Orphans describes what they left behind.
	CompensationErr error
	Uncompensated   []string
	Orphans         []string

	Transitions []State
	Took        time.Duration
}

func (r *Result) Succeeded() bool {
	return r.Cause == nil
}

type Saga struct {
	cfg    Config
	steps  []Step
	logger *logger.Logger
}

func New(cfg Config, log *logger.Logger, steps ...Step) *Saga {
	return &Saga{
		cfg:    cfg,
		steps:  steps,
		logger: log.With(zap.String("saga", cfg.Name)),
	}
}

// Run executes the steps in order. On failure the completed steps are
// compensated newest first on a context detached from ctx, so a cancelled
// or expired request still gets its rollback. The returned error is the
// failing step's error; compensation problems are reported in the Result.
func (s *Saga) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{State: s.cfg.Initial}
	res.Transitions = append(res.Transitions, s.cfg.Initial)

	runCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	var completed []Step
	for _, step := range s.steps {
		pending, err := call(runCtx, step.Name, step.Action)
		if err != nil {
			res.FailedStep = step.Name
			res.Cause = err
			s.logger.Warn("saga step failed",
				zap.String("step", step.Name),
				zap.String("state", string(res.State)),
				zap.Error(err))

			var late *abandoned
			if pending != nil {
				late = &abandoned{step: step, done: pending}
			}
			s.compensate(ctx, completed, late, res)
			res.Took = time.Since(start)
			return res, err
		}

		completed = append(completed, step)
		res.Completed = append(res.Completed, step.Name)
		if step.Reached != "" {
			s.transition(res, step.Reached)
		}
	}

	res.Took = time.Since(start)
	s.logger.Info("saga completed",
		zap.String("state", string(res.State)),
		zap.Duration("took", res.Took))
	return res, nil
}

// abandoned is a step whose deadline passed while its action was still
// running.
type abandoned struct {
	step Step
	done <-chan error
}

func (s *Saga) compensate(ctx context.Context, completed []Step, late *abandoned, res *Result) {
	s.transition(res, StateCompensating)

	var merr *multierror.Error
	if late != nil {
		finished, err := s.awaitLate(ctx, late)
		switch {
		case err != nil:
			merr = multierror.Append(merr, err)
			res.Uncompensated = append(res.Uncompensated, late.step.Name)
			res.Orphans = append(res.Orphans, fmt.Sprintf("step %s: outcome unknown", late.step.Name))
		case finished:
			// Undone first, it is the newest
			completed = append(completed, late.step)
		}
	}

	compCtx := context.WithoutCancel(ctx)
	if s.cfg.CompensationTimeout > 0 {
		var cancel context.CancelFunc
		compCtx, cancel = context.WithTimeout(compCtx, s.cfg.CompensationTimeout)
		defer cancel()
	}

	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}

		if _, err := call(compCtx, step.Name, step.Compensate); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("compensate %s: %w", step.Name, err))
			res.Uncompensated = append(res.Uncompensated, step.Name)
			if step.Artifact != nil {
				res.Orphans = append(res.Orphans, step.Artifact())
			}
			s.logger.Error("saga compensation failed", err, zap.String("step", step.Name))
			continue
		}
		s.logger.Info("saga step compensated", zap.String("step", step.Name))
	}

	if merr != nil {
		res.CompensationErr = merr.ErrorOrNil()
		s.transition(res, StatePartiallyRolledBack)
		return
	}
	s.transition(res, StateRolledBack)
}

// awaitLate gives an abandoned step one compensation budget to return.
// finished reports a late success that now needs compensating.
func (s *Saga) awaitLate(ctx context.Context, late *abandoned) (finished bool, err error) {
	budget := s.cfg.CompensationTimeout
	if budget <= 0 {
		budget = lateStepWait
	}
	wait, cancel := context.WithTimeout(context.WithoutCancel(ctx), budget)
	defer cancel()

	select {
	case stepErr := <-late.done:
		if stepErr != nil {
			return false, nil
		}
		s.logger.Warn("saga step finished after its deadline", zap.String("step", late.step.Name))
		return true, nil
	case <-wait.Done():
		s.logger.Error("saga step never returned", ErrOutcomeUnknown, zap.String("step", late.step.Name))
		return false, fmt.Errorf("%s: %w", late.step.Name, ErrOutcomeUnknown)
	}
}

func (s *Saga) transition(res *Result, to State) {
	s.logger.Debug("saga transition",
		zap.String("from", string(res.State)),
		zap.String("to", string(to)))
	res.State = to
	res.Transitions = append(res.Transitions, to)
}

// call runs fn but gives up once ctx is done. A step that ignores ctx keeps
// running in its goroutine; pending then delivers its eventual result.
func call(ctx context.Context, name string, fn func(context.Context) error) (pending <-chan error, err error) {
	if err := ctx.Err(); err != nil {
		return nil, ctxError(name, err)
	}

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("%w: %s: %v", errStepPanicked, name, r)
			}
		}()
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ctxError(name, err)
		}
		return nil, err
	case <-ctx.Done():
		return done, ctxError(name, ctx.Err())
	}
}

func ctxError(name string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrStepTimeout, name)
	}
	return fmt.Errorf("%s: %w", name, err)
}
