package user_test

import (
	"strings"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	emailsvc "github.com/trezcool/darasa/services/email"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func setup(t *testing.T) (user.ServiceInterface, *validator.Validate) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	conf := core.NewConfig()
	svc := user.NewService(inmemdb.NewUserRepository(db), emailsvc.NewConsoleServiceMock(conf), conf)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return svc, validate
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)

	usr, err := svc.Create(user.NewUser{
		Name:     "Amina",
		Email:    "amina@test.cd",
		Password: "v3ry-s3cret",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if usr.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if err = usr.CheckPassword("v3ry-s3cret"); err != nil {
		t.Error("password does not verify after Create()")
	}
	if err = usr.CheckPassword("wrong"); err == nil {
		t.Error("wrong password verified")
	}

	// welcome email goes out
	var found bool
	for _, msg := range emailsvc.SentMessages {
		if len(msg.To) == 1 && msg.To[0].Address == "amina@test.cd" {
			found = true
			break
		}
	}
	if !found {
		t.Error("no welcome email was sent")
	}
}

func TestService_CheckEmailUniqueness(t *testing.T) {
	svc, _ := setup(t)

	if _, err := svc.Create(user.NewUser{Name: "Amina", Email: "amina@test.cd", Password: "v3ry-s3cret"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	err := svc.CheckEmailUniqueness("amina@test.cd")
	if err == nil {
		t.Fatal("CheckEmailUniqueness() did not fail on a taken email")
	}
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("CheckEmailUniqueness() error type = %T, want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Errorf("ValidationError fields = %+v", vErr.Fields)
	}
}

func TestNewUser_Validate_passwordPolicy(t *testing.T) {
	svc, validate := setup(t)

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "sh0rt", wantTag: "pwdminlen"},
		{name: "whitespace", pwd: "has spaces 99", wantTag: "pwdnospace"},
		{name: "all numeric", pwd: "1234567890", wantTag: "pwdnotallnum"},
		{name: "similar to email", pwd: "amina@test.cd", wantTag: "pwdtoosim"},
		{name: "ok", pwd: "v3ry-s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := user.NewUser{
				Name:            "Amina",
				Email:           "amina@test.cd",
				Password:        tt.pwd,
				PasswordConfirm: tt.pwd,
			}
			err := nu.Validate(validate, svc)
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Validate() error type = %T, want validator.ValidationErrors", err)
			}
			var tags []string
			for _, vErr := range vErrs {
				tags = append(tags, vErr.Tag())
			}
			if !contains(tags, tt.wantTag) {
				t.Errorf("Validate() tags = %v, want %q", tags, tt.wantTag)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	svc, _ := setup(t)

	usr, err := svc.Create(user.NewUser{Name: "Amina", Email: "amina@test.cd", Password: "v3ry-s3cret"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	isAdmin := true
	updated, err := svc.Update(usr.ID, user.UpdateUser{Name: "Amina N.", IsAdmin: &isAdmin})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Name != "Amina N." || updated.Email != "amina@test.cd" || !updated.IsAdmin {
		t.Errorf("Update() = %+v", updated)
	}
	// password untouched
	if err = updated.CheckPassword("v3ry-s3cret"); err != nil {
		t.Error("password changed unexpectedly")
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
