package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/services/spreadsheet"
)

func (cli *commandLine) importUsers(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "opening file")
	}
	defer f.Close()

	rows, err := sheetsvc.ReadUserRows(f)
	if err != nil {
		return err
	}

	// the CLI acts as the school owner
	res, err := user.ImportUsers(
		context.Background(),
		cli.usrSvc,
		cli.validate,
		cli.translator,
		rows,
		user.RolePriority(user.RoleAdminOwner),
	)
	if err != nil {
		return errors.Wrap(err, "importing users")
	}

	fmt.Fprintf(cli.out, "%d user(s) created\n", res.Created)
	for _, rowErr := range res.Errors {
		for _, field := range sortedKeys(rowErr.Errors) {
			fmt.Fprintf(cli.out, "line %d: %s: %s\n", rowErr.Line, field, rowErr.Errors[field])
		}
	}
	return nil
}
