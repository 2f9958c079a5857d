package hiring

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrApplicationNotFound indicates the identifier resolved in neither
// application collection.
type ErrApplicationNotFound struct {
	ID uuid.UUID
}

func (e *ErrApplicationNotFound) Error() string {
	return fmt.Sprintf("application not found: %s", e.ID)
}

// ErrJobNotFound indicates the owning job could not be resolved.
type ErrJobNotFound struct {
	ID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.ID)
}

// ErrInvalidStatus indicates a requested status outside the enumerated set.
// The message enumerates the legal values so callers can surface them.
type ErrInvalidStatus struct {
	Status string
}

func (e *ErrInvalidStatus) Error() string {
	return fmt.Sprintf("invalid status %q: must be one of %s", e.Status, strings.Join(StatusValues(), ", "))
}

// ErrForbidden indicates the acting principal may not mutate applications on
// the target job.
type ErrForbidden struct {
	Email string
	JobID uuid.UUID
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("recruiter %s does not own job %s", e.Email, e.JobID)
}
