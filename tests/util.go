package testutil

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd string,
	isAdmin bool,
) user.User {
	t.Helper()

	usr := user.User{
		Name:    name,
		Email:   email,
		IsAdmin: isAdmin,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	title, slug, status string,
	order int,
) course.Course {
	t.Helper()

	crs, err := repo.CreateCourse(course.Course{
		Title:       title,
		Description: title + " description",
		Slug:        slug,
		Status:      status,
		Order:       order,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateModule(
	t *testing.T,
	repo course.Repository,
	courseID, title string,
	order int,
) course.Module {
	t.Helper()

	mod, err := repo.CreateModule(course.Module{
		CourseID: courseID,
		Title:    title,
		Order:    order,
	})
	if err != nil {
		t.Fatalf("CreateModule() failed: %v", err)
	}
	return mod
}

func CreateLesson(
	t *testing.T,
	repo course.Repository,
	moduleID, title string,
	releaseAt time.Time,
	order int,
) course.Lesson {
	t.Helper()

	lsn, err := repo.CreateLesson(course.Lesson{
		ModuleID:    moduleID,
		Title:       title,
		Description: null.StringFrom(title + " description"),
		VideoURL:    "https://videos.test.cd/" + moduleID,
		ReleaseAt:   releaseAt,
		Attachments: []string{},
		Order:       order,
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	return lsn
}
