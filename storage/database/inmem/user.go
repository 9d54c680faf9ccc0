package inmemdb

import (
	"context"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func cloneUser(usr user.User) user.User {
	usr.Roles = cloneStrings(usr.Roles)
	if usr.PasswordHash != nil {
		usr.PasswordHash = append([]byte(nil), usr.PasswordHash...)
	}
	return usr
}

func (repo *userRepository) CheckUsernameUniqueness(_ context.Context, username, email string, excludedUsers ...user.User) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[string]bool, len(excludedUsers))
	for _, usr := range excludedUsers {
		excluded[usr.ID] = true
	}
	for _, usr := range repo.db.table {
		if excluded[usr.ID] {
			continue
		}
		if username != "" && usr.Username == username {
			return user.ErrUsernameExists
		}
		if email != "" && usr.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = newID()
	repo.db.table[usr.ID] = cloneUser(usr)
	return cloneUser(usr), nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter *user.QueryFilter, ordering []core.DBOrdering) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := make([]user.User, 0, len(repo.db.table))
	for _, usr := range repo.db.table {
		if filter.Match(usr) {
			users = append(users, cloneUser(usr))
		}
	}
	sortRows(users, ordering, func(usr user.User, field string) interface{} {
		switch field {
		case "name":
			return usr.Name
		case "username":
			return usr.Username
		case "email":
			return usr.Email
		case "is_active":
			return usr.IsActive
		case "updated_at":
			return usr.UpdatedAt
		case "last_login":
			return usr.LastLogin
		}
		return usr.CreatedAt
	})
	return users, nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.table[filter.ID]; ok {
			return cloneUser(usr), nil
		}
		return user.User{}, user.ErrNotFound
	}
	for _, usr := range repo.db.table {
		switch {
		case filter.Username != "" && usr.Username == filter.Username,
			filter.Email != "" && usr.Email == filter.Email,
			filter.UsernameOrEmail != "" && (usr.Username == filter.UsernameOrEmail || usr.Email == filter.UsernameOrEmail):
			return cloneUser(usr), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	repo.db.table[usr.ID] = cloneUser(usr)
	return cloneUser(usr), nil
}

func (repo *userRepository) DeleteUsersByID(_ context.Context, ids []string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var deleted int
	for _, id := range ids {
		if _, ok := repo.db.table[id]; ok {
			delete(repo.db.table, id)
			deleted++
		}
	}
	return deleted, nil
}
