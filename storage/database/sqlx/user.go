package sqlxrepos

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/user"
)

const userTable = `"user"`

var userColumns = []string{
	"id", "name", "username", "email", "is_active", "roles", "language",
	"password_hash", "created_at", "updated_at", "last_login",
}

type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Username     null.String    `db:"username"`
	Email        null.String    `db:"email"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	Language     string         `db:"language"`
	PasswordHash []byte         `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func (r userRow) toModel() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username.String,
		Email:        r.Email.String,
		IsActive:     r.IsActive,
		Roles:        stringSlice(r.Roles),
		Language:     r.Language,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
		LastLogin:    r.LastLogin.Time.UTC(),
	}
}

func userValues(usr user.User) []interface{} {
	return []interface{}{
		usr.ID, usr.Name, nullString(usr.Username), nullString(usr.Email), usr.IsActive,
		stringArray(usr.Roles), usr.Language, usr.PasswordHash,
		usr.CreatedAt.UTC(), usr.UpdatedAt.UTC(), nullTime(usr.LastLogin),
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers ...user.User) error {
	or := sq.Or{}
	if username != "" {
		or = append(or, sq.Eq{"username": username})
	}
	if email != "" {
		or = append(or, sq.Eq{"email": email})
	}
	if len(or) == 0 {
		return nil
	}

	b := psql.Select(userColumns...).From(userTable).Where(or).Limit(2)
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, usr := range excludedUsers {
			ids = append(ids, usr.ID)
		}
		b = b.Where(sq.NotEq{"id": ids})
	}

	var rows []userRow
	if err := selectRows(ctx, repo.db, &rows, b); err != nil {
		return errors.Wrap(err, "checking username uniqueness")
	}
	for _, row := range rows {
		if username != "" && row.Username.String == username {
			return user.ErrUsernameExists
		}
	}
	if len(rows) > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = newID()
	b := psql.Insert(userTable).Columns(userColumns...).Values(userValues(usr)...)
	if _, err := exec(ctx, repo.db, b); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering) ([]user.User, error) {
	b := psql.Select(userColumns...).From(userTable)
	if filter != nil {
		if filter.IDs != nil {
			b = b.Where(sq.Eq{"id": filter.IDs})
		}
		if filter.Search != "" {
			s := ilike(filter.Search)
			b = b.Where(sq.Or{
				sq.ILike{"name": s},
				sq.ILike{"username": s},
				sq.ILike{"email": s},
			})
		}
		if len(filter.Roles) > 0 {
			patterns := make([]string, 0, len(filter.Roles))
			for _, role := range filter.Roles {
				patterns = append(patterns, strings.ReplaceAll(role, "_", `\_`)+"%")
			}
			b = b.Where("EXISTS (SELECT 1 FROM unnest(roles) r WHERE r LIKE ANY(?))", pq.Array(patterns))
		}
		if filter.IsActive != nil {
			b = b.Where(sq.Eq{"is_active": *filter.IsActive})
		}
		if !filter.CreatedFrom.IsZero() {
			b = b.Where(sq.GtOrEq{"created_at": filter.CreatedFrom.UTC()})
		}
		if !filter.CreatedTo.IsZero() {
			b = b.Where(sq.LtOrEq{"created_at": filter.CreatedTo.UTC()})
		}
	}
	b = orderBy(b, ordering, user.OrderingFields)

	var rows []userRow
	if err := selectRows(ctx, repo.db, &rows, b); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	b := psql.Select(userColumns...).From(userTable).Limit(1)
	switch {
	case filter.ID != "":
		b = b.Where(sq.Eq{"id": filter.ID})
	case filter.Username != "":
		b = b.Where(sq.Eq{"username": filter.Username})
	case filter.Email != "":
		b = b.Where(sq.Eq{"email": filter.Email})
	case filter.UsernameOrEmail != "":
		b = b.Where(sq.Or{
			sq.Eq{"username": filter.UsernameOrEmail},
			sq.Eq{"email": filter.UsernameOrEmail},
		})
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	if err := getRow(ctx, repo.db, &row, b); err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return row.toModel(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	b := psql.Update(userTable).SetMap(map[string]interface{}{
		"name":          usr.Name,
		"username":      nullString(usr.Username),
		"email":         nullString(usr.Email),
		"is_active":     usr.IsActive,
		"roles":         stringArray(usr.Roles),
		"language":      usr.Language,
		"password_hash": usr.PasswordHash,
		"updated_at":    usr.UpdatedAt.UTC(),
		"last_login":    nullTime(usr.LastLogin),
	}).Where(sq.Eq{"id": usr.ID})

	n, err := exec(ctx, repo.db, b)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	n, err := exec(ctx, repo.db, psql.Delete(userTable).Where(sq.Eq{"id": ids}))
	if err != nil {
		return 0, errors.Wrap(err, "deleting users")
	}
	return int(n), nil
}
