package repofake

import (
	"errors"
	"sort"
	"sync"

	"github.com/0xsonu/mlms/users"
	"github.com/google/uuid"
)

var _ users.Directory = (*FakeUserDirectory)(nil)

// FakeUserDirectory is an in-memory users.Directory used in tests and as
// the demo directory when no database is configured.
type FakeUserDirectory struct {
	users    map[string]*users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewFakeUserDirectory() *FakeUserDirectory {
	return &FakeUserDirectory{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
	}
}

func (ud *FakeUserDirectory) Upsert(user *users.User) error {
	ud.lock.Lock()
	defer ud.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ud.users[user.ID] = user
	ud.emailIds[user.Email] = user.ID
	return nil
}

func (ud *FakeUserDirectory) Delete(email string) error {
	ud.lock.Lock()
	defer ud.lock.Unlock()

	userID, ok := ud.emailIds[email]
	if !ok {
		return errors.New("not found")
	}
	delete(ud.emailIds, email)
	delete(ud.users, userID)
	return nil
}

func (ud *FakeUserDirectory) GetByEmail(email string) (*users.User, error) {
	ud.lock.RLock()
	defer ud.lock.RUnlock()

	id, ok := ud.emailIds[email]
	if !ok {
		return nil, errors.New("not found")
	}
	u := *ud.users[id]
	return &u, nil
}

func (ud *FakeUserDirectory) GetByID(id string) (*users.User, error) {
	ud.lock.RLock()
	defer ud.lock.RUnlock()

	if _, ok := ud.users[id]; !ok {
		return nil, errors.New("not found")
	}
	u := *ud.users[id]
	return &u, nil
}

func (ud *FakeUserDirectory) List(tenantID string, offset, limit int) ([]*users.User, error) {
	ud.lock.RLock()
	defer ud.lock.RUnlock()

	userList := make([]*users.User, 0)
	for _, v := range ud.users {
		if tenantID != "" && v.TenantID != tenantID {
			continue
		}
		userList = append(userList, v)
	}

	sort.Slice(userList, func(i, j int) bool {
		return userList[i].ID < userList[j].ID
	})

	if offset >= len(userList) {
		return []*users.User{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(userList) {
		end = len(userList)
	}
	return userList[offset:end], nil
}
