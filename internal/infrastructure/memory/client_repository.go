package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/trade-ledger-api/internal/domain"
	"github.com/jhoicas/trade-ledger-api/internal/domain/entity"
	"github.com/jhoicas/trade-ledger-api/internal/domain/repository"
)

var (
	_ repository.AcquirerRepository = (*AcquirerRepository)(nil)
	_ repository.SupplierRepository = (*SupplierRepository)(nil)
)

// AcquirerRepository implementación en memoria de repository.AcquirerRepository.
type AcquirerRepository struct {
	v *view
}

func (r *AcquirerRepository) Create(_ context.Context, a *entity.Acquirer) error {
	defer r.v.write()()
	st := &r.v.s.state
	if _, ok := st.acquirers[a.ID]; ok {
		return fmt.Errorf("%w: comprador %s", domain.ErrDuplicate, a.ID)
	}
	for _, cur := range st.acquirers {
		if cur.Name == a.Name {
			return fmt.Errorf("%w: comprador con nombre %q", domain.ErrDuplicate, a.Name)
		}
	}
	now := r.v.s.now()
	a.CreatedAt, a.UpdatedAt = now, now
	st.acquirers[a.ID] = *a
	return nil
}

func (r *AcquirerRepository) GetByID(_ context.Context, id string) (*entity.Acquirer, error) {
	defer r.v.read()()
	a, ok := r.v.s.state.acquirers[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AcquirerRepository) GetByName(_ context.Context, name string) (*entity.Acquirer, error) {
	defer r.v.read()()
	for _, a := range r.v.s.state.acquirers {
		if a.Name == name {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AcquirerRepository) List(_ context.Context, limit, offset int) ([]*entity.Acquirer, error) {
	defer r.v.read()()
	rows := make([]*entity.Acquirer, 0, len(r.v.s.state.acquirers))
	for _, a := range r.v.s.state.acquirers {
		a := a
		rows = append(rows, &a)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return page(rows, limit, offset), nil
}

func (r *AcquirerRepository) Delete(_ context.Context, id string) error {
	defer r.v.write()()
	if _, ok := r.v.s.state.acquirers[id]; !ok {
		return fmt.Errorf("%w: comprador %s", domain.ErrNotFound, id)
	}
	delete(r.v.s.state.acquirers, id)
	return nil
}

// SupplierRepository implementación en memoria de repository.SupplierRepository.
type SupplierRepository struct {
	v *view
}

func (r *SupplierRepository) Create(_ context.Context, s *entity.Supplier) error {
	defer r.v.write()()
	st := &r.v.s.state
	if _, ok := st.suppliers[s.ID]; ok {
		return fmt.Errorf("%w: proveedor %s", domain.ErrDuplicate, s.ID)
	}
	for _, cur := range st.suppliers {
		if cur.Name == s.Name {
			return fmt.Errorf("%w: proveedor con nombre %q", domain.ErrDuplicate, s.Name)
		}
	}
	now := r.v.s.now()
	s.CreatedAt, s.UpdatedAt = now, now
	st.suppliers[s.ID] = *s
	return nil
}

func (r *SupplierRepository) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	defer r.v.read()()
	s, ok := r.v.s.state.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SupplierRepository) GetByName(_ context.Context, name string) (*entity.Supplier, error) {
	defer r.v.read()()
	for _, s := range r.v.s.state.suppliers {
		if s.Name == name {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepository) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	defer r.v.read()()
	rows := make([]*entity.Supplier, 0, len(r.v.s.state.suppliers))
	for _, s := range r.v.s.state.suppliers {
		s := s
		rows = append(rows, &s)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return page(rows, limit, offset), nil
}

func (r *SupplierRepository) Delete(_ context.Context, id string) error {
	defer r.v.write()()
	if _, ok := r.v.s.state.suppliers[id]; !ok {
		return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, id)
	}
	delete(r.v.s.state.suppliers, id)
	return nil
}
