package queue

import (
	"context"
	"time"
)

// Command is a unit of work executed by the single writer. Its result is
// delivered exactly once on Done.
type Command struct {
	Name       string
	EnqueuedAt time.Time

	ctx  context.Context
	run  func(ctx context.Context) error
	done chan error
}

// NewCommand wraps run. ctx is checked again right before execution so a
// caller that gave up does not mutate state.
func NewCommand(ctx context.Context, name string, run func(ctx context.Context) error) *Command {
	return &Command{
		Name: name,
		ctx:  ctx,
		run:  run,
		done: make(chan error, 1),
	}
}

// Context returns the submitter's context.
func (c *Command) Context() context.Context { return c.ctx }

// Execute runs the command unless its context is already done and publishes
// the result. It must be called at most once.
func (c *Command) Execute() error {
	var err error
	if c.ctx.Err() != nil {
		err = ErrCanceled
	} else {
		err = c.run(c.ctx)
	}
	c.done <- err
	return err
}

// Fail publishes err without running the command.
func (c *Command) Fail(err error) {
	c.done <- err
}

// Done delivers the result of the command.
func (c *Command) Done() <-chan error { return c.done }
