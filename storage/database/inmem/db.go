package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/core/user"
)

// DB is the process-lifetime in-memory store: one table per entity, each
// guarded by its own RWMutex. It is created once at startup and injected into
// the repositories; there is no teardown.
type (
	DB struct {
		user     *userTable
		course   *courseTable
		module   *moduleTable
		lesson   *lessonTable
		progress *progressTable
		comment  *commentTable
		note     *noteTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}
	courseTable struct {
		sync.RWMutex
		table map[string]*course.Course
	}
	moduleTable struct {
		sync.RWMutex
		table map[string]*course.Module
	}
	lessonTable struct {
		sync.RWMutex
		table map[string]*course.Lesson
	}
	progressTable struct {
		sync.RWMutex
		table map[string]*student.Progress
	}
	commentTable struct {
		sync.RWMutex
		table map[string]*student.Comment
	}
	noteTable struct {
		sync.RWMutex
		table map[string]*student.Note
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		course:   &courseTable{table: make(map[string]*course.Course)},
		module:   &moduleTable{table: make(map[string]*course.Module)},
		lesson:   &lessonTable{table: make(map[string]*course.Lesson)},
		progress: &progressTable{table: make(map[string]*student.Progress)},
		comment:  &commentTable{table: make(map[string]*student.Comment)},
		note:     &noteTable{table: make(map[string]*student.Note)},
	}
	return db, nil
}

func newPK() string {
	return uuid.New().String()
}
