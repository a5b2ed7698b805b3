package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/ordoflow/internal/validation"
)

var (
	// ErrEmptyText is returned when a task title is empty or whitespace.
	ErrEmptyText = errors.New("task text cannot be empty")

	// ErrTextTooLong is returned when a task title exceeds MaxTextLength.
	ErrTextTooLong = errors.New("task text exceeds maximum length")

	// ErrInvalidPriority is returned for priorities outside p1..p4.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrTaskNotFound is returned by lookups for an id that is not in the snapshot.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStorage wraps every failure of the underlying database.
	ErrStorage = errors.New("storage error")
)

// ValidateText checks a task title after trimming surrounding whitespace.
func ValidateText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if len(text) > MaxTextLength {
		return fmt.Errorf("%w: %d > %d", ErrTextTooLong, len(text), MaxTextLength)
	}
	return nil
}

// ValidatePriority checks that the priority is one of p1..p4.
func ValidatePriority(priority Priority) error {
	if !priority.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidPriority, priority, ValidPriorities())
	}
	return nil
}

// ValidateTask checks a task loaded from or written to the store.
func ValidateTask(t *Task) error {
	if err := ValidateText(t.Text); err != nil {
		return err
	}
	return ValidatePriority(t.Priority)
}

func storageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
