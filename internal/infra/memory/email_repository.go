// Package memory keeps generated emails for the lifetime of the process.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/xavierca1/leadmail/internal/entity"
)

// EmailRepository is an in-process store. Ids start at 1 and are never reused,
// even after a delete. Concurrent updates to one id are last-write-wins.
type EmailRepository struct {
	mu     sync.RWMutex
	emails map[int]entity.GeneratedEmail
	lastID int
	now    func() time.Time
}

func NewEmailRepository() *EmailRepository {
	return &EmailRepository{
		emails: make(map[int]entity.GeneratedEmail),
		now:    time.Now,
	}
}

// Create assigns the next id, stamps CreatedAt when unset and stores a copy.
// The assigned fields are written back into email.
func (r *EmailRepository) Create(ctx context.Context, email *entity.GeneratedEmail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	email.ID = r.lastID
	if email.CreatedAt.IsZero() {
		email.CreatedAt = r.now()
	}
	r.emails[email.ID] = *email
	return nil
}

// List returns every stored email in creation order.
func (r *EmailRepository) List(ctx context.Context) ([]entity.GeneratedEmail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.GeneratedEmail, 0, len(r.emails))
	for _, e := range r.emails {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b entity.GeneratedEmail) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *EmailRepository) FindByID(ctx context.Context, id int) (*entity.GeneratedEmail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.emails[id]
	if !ok {
		return nil, entity.ErrEmailNotFound
	}
	return &e, nil
}

// Update merges the set fields of patch into the stored email.
func (r *EmailRepository) Update(ctx context.Context, id int, patch entity.EmailPatch) (*entity.GeneratedEmail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.emails[id]
	if !ok {
		return nil, entity.ErrEmailNotFound
	}
	patch.Apply(&e)
	r.emails[id] = e
	return &e, nil
}

func (r *EmailRepository) Delete(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.emails[id]; !ok {
		return false, nil
	}
	delete(r.emails, id)
	return true, nil
}

// Count reports how many emails are stored.
func (r *EmailRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.emails)
}
