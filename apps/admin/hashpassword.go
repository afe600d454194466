package main

import (
	"fmt"

	"github.com/trezcool/darasa/core/user"
)

// hashPassword prints the bcrypt hash of the prompted password.
func (cli *commandLine) hashPassword(pwd string) error {
	var usr user.User
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, string(usr.PasswordHash))
	return nil
}
