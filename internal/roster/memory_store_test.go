package roster

import (
	"context"
	"errors"
	"slices"
	"strings"

	"school_achievements/internal/models"
)

// memoryStore хранит пользователей в памяти с откатом через снимки.
type memoryStore struct {
	roles       []models.Role
	users       []models.User
	nextID      uint
	failOn      map[string]error
	archiveErr  error
	commitCount int
}

func newMemoryStore(roleNames ...string) *memoryStore {
	s := &memoryStore{failOn: map[string]error{}}
	for i, name := range roleNames {
		s.roles = append(s.roles, models.Role{ID: uint(i + 1), Name: name})
	}
	return s
}

func cloneUsers(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		u.Roles = slices.Clone(u.Roles)
		u.GroupsLeader = slices.Clone(u.GroupsLeader)
		out[i] = u
	}
	return out
}

func (s *memoryStore) Transaction(_ context.Context, fn func(tx Tx) error) error {
	snapshot, next := cloneUsers(s.users), s.nextID
	if err := fn(memoryTx{s}); err != nil {
		s.users, s.nextID = snapshot, next
		return err
	}
	s.commitCount++
	return nil
}

func (s *memoryStore) add(u models.User, roleName string) *models.User {
	s.nextID++
	u.ID = s.nextID
	for _, r := range s.roles {
		if r.Name == roleName {
			u.Roles = append(u.Roles, r)
		}
	}
	s.users = append(s.users, u)
	return &s.users[len(s.users)-1]
}

func (s *memoryStore) byExternalID(id string) *models.User {
	for i := range s.users {
		if s.users[i].ExternalID == id {
			return &s.users[i]
		}
	}
	return nil
}

type memoryTx struct {
	s *memoryStore
}

func (t memoryTx) FindRole(name string) (*models.Role, error) {
	for _, r := range t.s.roles {
		if r.Name == name {
			role := r
			return &role, nil
		}
	}
	return nil, ErrRoleNotFound
}

func (t memoryTx) FindByExternalID(externalID string) (*models.User, error) {
	u := t.s.byExternalID(externalID)
	if u == nil {
		return nil, nil
	}
	c := cloneUsers([]models.User{*u})[0]
	return &c, nil
}

func (t memoryTx) EmailOwner(email string) (string, bool, error) {
	for _, u := range t.s.users {
		if strings.EqualFold(u.Email, email) {
			return u.ExternalID, true, nil
		}
	}
	return "", false, nil
}

func (t memoryTx) CreateUser(user *models.User, role *models.Role) error {
	if err := t.s.failOn[user.ExternalID]; err != nil {
		return err
	}
	if owner, taken, _ := t.EmailOwner(user.Email); taken {
		return errors.New("duplicate email owned by " + owner)
	}
	created := t.s.add(*user, role.Name)
	user.ID = created.ID
	return nil
}

func (t memoryTx) SaveUser(user *models.User, addRole *models.Role) error {
	if err := t.s.failOn[user.ExternalID]; err != nil {
		return err
	}
	stored := t.s.byExternalID(user.ExternalID)
	if stored == nil {
		return errors.New("user not found")
	}
	roles := stored.Roles
	*stored = cloneUsers([]models.User{*user})[0]
	stored.Roles = roles
	if addRole != nil {
		stored.Roles = append(stored.Roles, *addRole)
	}
	return nil
}

func (t memoryTx) ArchiveMissing(role *models.Role, keep []string) (int, error) {
	if t.s.archiveErr != nil {
		return 0, t.s.archiveErr
	}
	n := 0
	for i := range t.s.users {
		u := &t.s.users[i]
		if u.Archived || !u.HasRole(role.Name) || slices.Contains(keep, u.ExternalID) {
			continue
		}
		u.Archived = true
		n++
	}
	return n, nil
}

func (t memoryTx) Savepoint(fn func(tx Tx) error) error {
	snapshot, next := cloneUsers(t.s.users), t.s.nextID
	if err := fn(t); err != nil {
		t.s.users, t.s.nextID = snapshot, next
		return err
	}
	return nil
}
