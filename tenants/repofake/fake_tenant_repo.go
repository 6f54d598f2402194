package repofake

import (
	"errors"
	"sync"

	"github.com/0xsonu/mlms/tenants"
	"github.com/google/uuid"
)

var _ tenants.Catalog = (*FakeTenantCatalog)(nil)

// FakeTenantCatalog is an in-memory tenants.Catalog. Insertion order is
// preserved so First returns the tenant registered first, matching the
// default-tenant fallback contract.
type FakeTenantCatalog struct {
	tenants map[string]*tenants.Tenant
	order   []string
	lock    sync.RWMutex
}

func NewFakeTenantCatalog() *FakeTenantCatalog {
	return &FakeTenantCatalog{
		tenants: make(map[string]*tenants.Tenant),
	}
}

func (tc *FakeTenantCatalog) Upsert(tenant *tenants.Tenant) error {
	tc.lock.Lock()
	defer tc.lock.Unlock()
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	if _, ok := tc.tenants[tenant.ID]; !ok {
		tc.order = append(tc.order, tenant.ID)
	}
	tc.tenants[tenant.ID] = tenant
	return nil
}

func (tc *FakeTenantCatalog) Delete(tenantID string) error {
	tc.lock.Lock()
	defer tc.lock.Unlock()
	if _, ok := tc.tenants[tenantID]; !ok {
		return nil
	}
	delete(tc.tenants, tenantID)
	for i, id := range tc.order {
		if id == tenantID {
			tc.order = append(tc.order[:i], tc.order[i+1:]...)
			break
		}
	}
	return nil
}

func (tc *FakeTenantCatalog) Get(tenantID string) (*tenants.Tenant, error) {
	tc.lock.RLock()
	defer tc.lock.RUnlock()
	tenant, ok := tc.tenants[tenantID]
	if !ok {
		return nil, errors.New("not found")
	}
	t := *tenant
	return &t, nil
}

func (tc *FakeTenantCatalog) First() (*tenants.Tenant, error) {
	tc.lock.RLock()
	defer tc.lock.RUnlock()
	if len(tc.order) == 0 {
		return nil, errors.New("catalog is empty")
	}
	t := *tc.tenants[tc.order[0]]
	return &t, nil
}

func (tc *FakeTenantCatalog) List(offset, limit int) ([]*tenants.Tenant, error) {
	tc.lock.RLock()
	defer tc.lock.RUnlock()

	tenantList := make([]*tenants.Tenant, 0, len(tc.order))
	for _, id := range tc.order {
		tenantList = append(tenantList, tc.tenants[id])
	}

	if offset >= len(tenantList) {
		return []*tenants.Tenant{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(tenantList) {
		end = len(tenantList)
	}
	return tenantList[offset:end], nil
}
