package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()
	out := new(bytes.Buffer)
	return &commandLine{conf: core.NewConfig(), out: out}, out
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_genToken(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"gentoken"}, wantErr: errHelp},
		{name: "student token", args: []string{"gentoken", "-id", "u1", "-name", "Amina", "-email", "amina@test.cd"}},
		{name: "admin token", args: []string{"gentoken", "-id", "u2", "-admin"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			ss := strings.TrimSpace(out.String())
			claims := new(echoapi.Claims)
			token, err := jwt.ParseWithClaims(ss, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(cli.conf.SecretKey), nil
			})
			if err != nil {
				t.Fatalf("parsing token failed, %v", err)
			}
			if !token.Valid {
				t.Error("token is not valid")
			}
			wantAdmin := tt.name == "admin token"
			if claims.IsAdmin != wantAdmin {
				t.Errorf("claims.IsAdmin = %v, want %v", claims.IsAdmin, wantAdmin)
			}
		})
	}
}

func Test_commandLine_hashPassword(t *testing.T) {
	cli, out := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no password", args: []string{"hashpassword"}, wantErr: errHelp},
		{name: "hash", args: []string{"hashpassword"}, extra: extra{pwd: "s3cr3t-pwd"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			if err != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			hash := lines[len(lines)-1]
			usr := user.User{PasswordHash: []byte(hash)}
			if err := usr.CheckPassword("s3cr3t-pwd"); err != nil {
				t.Errorf("hashed password does not verify, %v", err)
			}
		})
	}
}
