package rotamenu

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrPoolExhausted indicates every slot of an item pool is in use.
	// The page being built has more items of one type than the pool was sized for.
	ErrPoolExhausted = errors.New("item pool exhausted")

	// ErrPageNotFound indicates the page loader has no page by that name.
	ErrPageNotFound = errors.New("menu page not found")

	// ErrEmptyStack is returned by Pop when there is no parent page to return to.
	ErrEmptyStack = errors.New("no parent page")
)

// InfrastructureError represents an engine-level failure: a page could not
// be built, the display could not be flushed, and so on. Navigation itself
// never produces one; item-level problems are absorbed and rendered.
type InfrastructureError struct {
	Op  string // Operation that failed (e.g., "load_page", "flush")
	Err error  // Underlying error
}

func (e *InfrastructureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rotamenu: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("rotamenu: %s", e.Op)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// NewInfrastructureError creates a new infrastructure error.
func NewInfrastructureError(op string, err error) *InfrastructureError {
	return &InfrastructureError{Op: op, Err: err}
}

// IsInfrastructureError checks if an error is an infrastructure error.
func IsInfrastructureError(err error) bool {
	var infraErr *InfrastructureError
	return errors.As(err, &infraErr)
}

// IsPoolExhausted checks if an error was caused by running out of item slots.
func IsPoolExhausted(err error) bool {
	return errors.Is(err, ErrPoolExhausted)
}
