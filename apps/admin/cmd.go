package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/darasa/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
	out  io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  gentoken -id ID [-name NAME] [-email EMAIL] [-admin] - generate a signed API token")
	fmt.Fprintln(cli.out, "  hashpassword - hash a password for seeding; the password will be prompted")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	genTokenCmd := flag.NewFlagSet("gentoken", flag.ExitOnError)
	genTokenID := genTokenCmd.String("id", "", "The user ID the token is issued for.")
	genTokenName := genTokenCmd.String("name", "", "The user's name.")
	genTokenEmail := genTokenCmd.String("email", "", "The user's email.")
	genTokenAdmin := genTokenCmd.Bool("admin", false, "Issue an admin token.")

	switch args[1] {
	case "gentoken":
		if err := genTokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *genTokenID == "" {
			genTokenCmd.Usage()
			return errHelp
		}
		return cli.genToken(*genTokenID, *genTokenName, *genTokenEmail, *genTokenAdmin)
	case "hashpassword":
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
