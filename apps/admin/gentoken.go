package main

import (
	"fmt"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core/user"
)

// genToken prints a signed JWT for the given identity; handy for driving the
// API from curl without going through /auth/login.
func (cli *commandLine) genToken(id, name, email string, isAdmin bool) error {
	usr := user.User{ID: id, Name: name, Email: email, IsAdmin: isAdmin}
	token, err := echoapi.GenerateToken(cli.conf, echoapi.GetUserClaims(cli.conf, usr))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
