// Package memory provides an in-process feedback repository for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/timeutil"
)

// Repository implements domain.FeedbackRepository in memory.
// It is safe for concurrent use; IDs start at 1 and strictly increase.
type Repository struct {
	mu     sync.Mutex
	clock  timeutil.Clock
	lastID int64
	items  []domain.Feedback
}

// NewRepository creates an empty Repository.
func NewRepository(clock timeutil.Clock) *Repository {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &Repository{clock: clock}
}

// Save stores a copy of feedback and sets its ID and CreatedAt.
func (r *Repository) Save(ctx context.Context, feedback *domain.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	feedback.ID = r.lastID
	feedback.CreatedAt = r.clock.Now().UTC()
	r.items = append(r.items, *feedback)
	return nil
}

// All returns a copy of every stored entry in insertion order.
func (r *Repository) All() []domain.Feedback {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Feedback, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of stored entries.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Ensure Repository implements domain.FeedbackRepository at compile time.
var _ domain.FeedbackRepository = (*Repository)(nil)
