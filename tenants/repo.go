package tenants

// Catalog is the tenant lookup collaborator consumed by the branding
// resolver. First returns the catalog's default tenant, used when no
// tenant id has been saved or the saved id no longer resolves.
type Catalog interface {
	Upsert(tenant *Tenant) error
	Delete(tenantID string) error
	Get(tenantID string) (*Tenant, error)
	First() (*Tenant, error)
	List(offset, limit int) ([]*Tenant, error)
}
