package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return err
	}
	if _, err = cli.usrSvc.SetPassword(ctx, usr, pwd); err != nil {
		return errors.Wrap(err, "setting password")
	}
	fmt.Fprintf(cli.out, "password of %q reset\n", usr.Username)
	return nil
}
