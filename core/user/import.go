package user

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
)

// ImportRow is one spreadsheet row of users to import.
// Roles holds comma separated role values.
type ImportRow struct {
	Line     int
	Name     string
	Username string
	Email    string
	Roles    string
	Language string
	Password string
}

type (
	RowError struct {
		Line   int               `json:"line"`
		Errors map[string]string `json:"errors"`
	}

	ImportResult struct {
		Created int        `json:"created"`
		Errors  []RowError `json:"errors"`
	}
)

func (row ImportRow) newUser() NewUser {
	var roles []string
	for _, role := range strings.Split(row.Roles, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, strings.ToLower(role))
		}
	}
	return NewUser{
		Name:            row.Name,
		Username:        row.Username,
		Email:           row.Email,
		Language:        row.Language,
		Password:        row.Password,
		PasswordConfirm: row.Password,
		Roles:           roles,
	}
}

// ImportUsers creates a user per row. Invalid rows are reported and skipped; roles above
// maxPriority are refused. Only unexpected errors abort the import.
func ImportUsers(
	ctx context.Context,
	svc Service,
	validate *validator.Validate,
	translator ut.Translator,
	rows []ImportRow,
	maxPriority int,
) (ImportResult, error) {
	res := ImportResult{Errors: []RowError{}}

	for _, row := range rows {
		nu := row.newUser()
		if err := nu.Validate(ctx, validate, svc); err != nil {
			msgs, ok := core.ValidationMessages(err, translator)
			if !ok {
				return res, errors.Wrapf(err, "validating row %d", row.Line)
			}
			res.Errors = append(res.Errors, RowError{Line: row.Line, Errors: msgs})
			continue
		}
		if MaxRolePriority(nu.Roles) > maxPriority {
			res.Errors = append(res.Errors, RowError{Line: row.Line, Errors: map[string]string{"roles": ErrNoPermsToSetRoles.Error()}})
			continue
		}
		if _, err := svc.Create(ctx, nu); err != nil {
			return res, errors.Wrapf(err, "creating user of row %d", row.Line)
		}
		res.Created++
	}
	return res, nil
}
