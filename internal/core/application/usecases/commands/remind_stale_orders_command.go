package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/guard"
)

var (
	ErrRemindStaleOrdersCommandIsNotConstructed = errors.New(
		"RemindStaleOrdersCommand must be created via NewRemindStaleOrdersCommand constructor",
	)
	ErrStaleThresholdIsInvalid = errors.New("stale threshold must be greater than 0")
)

// RemindStaleOrdersCommand asks for reminder notifications about pending
// orders that shops have not confirmed within the threshold.
type RemindStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewRemindStaleOrdersCommand creates a command with the staleness threshold.
// Returns an error if the threshold is not positive.
func NewRemindStaleOrdersCommand(olderThan time.Duration) (RemindStaleOrdersCommand, error) {
	cmd := RemindStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOlderThan(olderThan); err != nil {
		return RemindStaleOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemindStaleOrdersCommandIsNotConstructed if validation fails.
func (c RemindStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRemindStaleOrdersCommandIsNotConstructed)
}

// OlderThan returns how old a pending order must be to trigger a reminder.
func (c RemindStaleOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c *RemindStaleOrdersCommand) setOlderThan(olderThan time.Duration) error {
	if olderThan <= 0 {
		return ErrStaleThresholdIsInvalid
	}

	c.olderThan = olderThan
	return nil
}
