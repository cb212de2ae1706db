package memory

import (
	"context"
	"strings"
	"time"

	"github.com/hugohenrick/sorveteria-pos/internal/domain/employee"
)

// EmployeeRepository implementa employee.Repository
type EmployeeRepository struct{ s *Store }

// Create implementa employee.Repository.Create
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.employees {
		if existing.ShopID == e.ShopID && strings.EqualFold(existing.Email, e.Email) {
			return employee.ErrDuplicateEmail
		}
	}
	if err := r.s.fail("employee.insert"); err != nil {
		return err
	}
	cp := *e
	r.s.employees[e.ID] = &cp
	return nil
}

// FindByID implementa employee.Repository.FindByID
func (r *EmployeeRepository) FindByID(ctx context.Context, shopID, id string) (*employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok || e.ShopID != shopID {
		return nil, employee.ErrEmployeeNotFound
	}
	cp := *e
	return &cp, nil
}

// FindByEmail implementa employee.Repository.FindByEmail
func (r *EmployeeRepository) FindByEmail(ctx context.Context, shopID, email string) (*employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, e := range r.s.employees {
		if e.ShopID == shopID && strings.EqualFold(e.Email, email) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

// CountByShop implementa employee.Repository.CountByShop
func (r *EmployeeRepository) CountByShop(ctx context.Context, shopID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, e := range r.s.employees {
		if e.ShopID == shopID {
			n++
		}
	}
	return n, nil
}

// UpdateLastLogin implementa employee.Repository.UpdateLastLogin
func (r *EmployeeRepository) UpdateLastLogin(ctx context.Context, shopID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok || e.ShopID != shopID {
		return employee.ErrEmployeeNotFound
	}
	now := time.Now()
	e.LastLoginAt = &now
	return nil
}
