package memory

import (
	"context"
	"sync"

	"go-jobboard-backend/internal/domain"
)

// Directory is an in-memory employee and company directory, seeded through
// AddEmployee and AddCompany.
type Directory struct {
	mu        sync.RWMutex
	employees map[string]domain.Employee
	companies map[string]struct{}
}

func NewDirectory() *Directory {
	return &Directory{
		employees: make(map[string]domain.Employee),
		companies: make(map[string]struct{}),
	}
}

func (d *Directory) AddEmployee(e domain.Employee) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.employees[e.ID] = e
}

func (d *Directory) RemoveEmployee(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.employees, id)
}

func (d *Directory) AddCompany(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.companies[id] = struct{}{}
}

func (d *Directory) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return &e, nil
}

func (d *Directory) Exists(ctx context.Context, id string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.companies[id]
	return ok, nil
}
