// Package memory is the in-memory permit repository used for local
// development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mesto-decin/parking-permits/shared/domain"
)

type Repository struct {
	mu      sync.RWMutex
	permits map[int]domain.Permit
	nextID  int
}

func New() *Repository {
	return &Repository{permits: make(map[int]domain.Permit), nextID: 1}
}

func (r *Repository) AddPermit(ctx context.Context, app domain.PermitApplication) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	r.permits[id] = domain.Permit{
		PermitApplication: app,
		ID:                id,
		Status:            "pending",
		VariableSymbol:    newVariableSymbol(),
	}
	return id, nil
}

func (r *Repository) GetPermitByID(ctx context.Context, id int) (*domain.Permit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	permit, ok := r.permits[id]
	if !ok {
		return nil, nil
	}
	return &permit, nil
}

func (r *Repository) GetPermits(ctx context.Context, carRegistration string) ([]domain.Permit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	permits := make([]domain.Permit, 0, len(r.permits))
	for id := 1; id < r.nextID; id++ {
		permit, ok := r.permits[id]
		if !ok {
			continue
		}
		if carRegistration != "" && permit.CarRegistration != carRegistration {
			continue
		}
		permits = append(permits, permit)
	}
	return permits, nil
}

// newVariableSymbol derives a payment reference from random uuid bits;
// banks cap variable symbols at ten digits.
func newVariableSymbol() string {
	return fmt.Sprintf("%010d", uint64(uuid.New().ID()))
}
