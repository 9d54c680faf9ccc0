package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/user"
)

// addUser updates or creates a user.User, always active.
func (cli *commandLine) addUser(name, uname, email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.findUser(ctx, uname, email)
	switch errors.Cause(err) {
	case nil:
		active := true
		data := user.UpdateUser{
			Name:            name,
			Username:        uname,
			Email:           email,
			IsActive:        &active,
			Password:        pwd,
			PasswordConfirm: pwd,
		}
		if isAdmin {
			data.Roles = append(usr.Roles, user.RoleAdminOwner)
		}
		if err = data.Validate(ctx, usr, cli.validate, cli.usrSvc); err != nil {
			return cli.validationError(err)
		}
		if usr, err = cli.usrSvc.Update(ctx, usr, data); err != nil {
			return errors.Wrap(err, "updating user")
		}
		fmt.Fprintf(cli.out, "user %q updated\n", usr.Username)
	case user.ErrNotFound:
		if name == "" {
			name = uname
		}
		data := user.NewUser{Name: name, Username: uname, Email: email, Password: pwd, PasswordConfirm: pwd}
		if isAdmin {
			data.Roles = []string{user.RoleAdminOwner}
		}
		if err = data.Validate(ctx, cli.validate, cli.usrSvc); err != nil {
			return cli.validationError(err)
		}
		if usr, err = cli.usrSvc.Create(ctx, data); err != nil {
			return errors.Wrap(err, "creating user")
		}
		fmt.Fprintf(cli.out, "user %q created\n", usr.Username)
	default:
		return errors.Wrap(err, "finding user")
	}
	return nil
}

func (cli *commandLine) findUser(ctx context.Context, uname, email string) (user.User, error) {
	for _, u := range []string{uname, email} {
		if u == "" {
			continue
		}
		usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, u)
		if errors.Cause(err) != user.ErrNotFound {
			return usr, err
		}
	}
	return user.User{}, user.ErrNotFound
}

// validationError flattens validation errors into one readable error.
func (cli *commandLine) validationError(err error) error {
	msgs, ok := core.ValidationMessages(err, cli.translator)
	if !ok {
		return err
	}
	var out string
	for _, field := range sortedKeys(msgs) {
		out += fmt.Sprintf("\n  %s: %s", field, msgs[field])
	}
	return errors.New("invalid user:" + out)
}
