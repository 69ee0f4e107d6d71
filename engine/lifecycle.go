package engine

import (
	"time"

	"TaskBackend/models"
)

// deriveCompletedAt resolves the completedAt value a mutation should persist.
// Rules, in order: an explicit caller value always wins; arriving at DONE
// without a stamp sets now; leaving DONE clears a previously set value;
// otherwise the existing value stands. Staying DONE keeps the original
// stamp, so re-submitting the same fields changes nothing. The same
// derivation runs for full updates and for status-only patches.
func deriveCompletedAt(existing *time.Time, requested models.Status, explicit *time.Time, now time.Time) *time.Time {
	switch {
	case explicit != nil:
		return explicit
	case requested == models.StatusDone:
		if existing != nil {
			return existing
		}
		return &now
	case existing != nil:
		return nil
	default:
		return existing
	}
}
