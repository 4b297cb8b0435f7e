/*
store.go - Persistence contract for the participant profile

PURPOSE:
  Defines the storage interface the surrounding application implements. The
  engine itself is pure; a store owns the long-lived profile record and is
  responsible for serializing writes (at most one writer per profile).

IMPLEMENTATIONS:
  - store/sqlite: SQLite-backed store for the server
  - plan/store:   In-memory store for tests and demos

SEE ALSO:
  - types.go: ProfileSnapshot, ContributionElection
*/
package plan

import (
	"context"
	"errors"
)

// ErrProfileNotFound is returned when no profile exists under the given ID.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore persists the single participant profile record.
type ProfileStore interface {
	// GetProfile returns the profile snapshot, or ErrProfileNotFound.
	GetProfile(ctx context.Context, id string) (*ProfileSnapshot, error)

	// SaveProfile creates or replaces the full profile record.
	SaveProfile(ctx context.Context, p ProfileSnapshot) error

	// UpdateContribution replaces the persisted contribution election for
	// the profile. Returns ErrProfileNotFound if the profile does not exist.
	UpdateContribution(ctx context.Context, id string, e ContributionElection) error
}
