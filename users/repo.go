package users

// Directory is the user lookup collaborator consumed by the session
// manager. Static in-memory directories and SQL-backed directories both
// implement it.
type Directory interface {
	Upsert(user *User) error
	Delete(email string) error
	GetByEmail(email string) (*User, error)
	GetByID(id string) (*User, error)
	List(tenantID string, offset, limit int) ([]*User, error)
}
