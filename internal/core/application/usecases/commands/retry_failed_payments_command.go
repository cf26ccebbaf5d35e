package commands

import (
	"errors"
	"fmt"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrRetryFailedPaymentsCommandIsNotConstructed = errors.New(
	"RetryFailedPaymentsCommand must be created via NewRetryFailedPaymentsCommand constructor",
)

// RetryFailedPaymentsCommand represents a sweep over orders stuck in
// PAYMENT_FAILED: each is sent back to PAYMENT_PROCESSING for another
// attempt, or cancelled once its retry budget is exhausted.
type RetryFailedPaymentsCommand struct { //nolint:recvcheck //using for validation
	maxAttempts int

	guard guard.ConstructorGuard
}

// NewRetryFailedPaymentsCommand creates a sweep command with the given retry
// budget. maxAttempts must be positive.
func NewRetryFailedPaymentsCommand(maxAttempts int) (RetryFailedPaymentsCommand, error) {
	command := RetryFailedPaymentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if maxAttempts <= 0 {
		return RetryFailedPaymentsCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"maxAttempts",
			fmt.Errorf("%d is not greater than 0", maxAttempts),
		)
	}
	command.maxAttempts = maxAttempts

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryFailedPaymentsCommand) Validate() error {
	return c.guard.Validate(ErrRetryFailedPaymentsCommandIsNotConstructed)
}

// MaxAttempts returns the retry budget.
func (c RetryFailedPaymentsCommand) MaxAttempts() int {
	return c.maxAttempts
}
