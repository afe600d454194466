package student

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

type (
	// Progress is the single record tracking a user's completion of a lesson.
	// At most one record exists per (user, lesson) pair; writes upsert.
	Progress struct {
		ID          string    `json:"id"`
		UserID      string    `json:"userId"`
		LessonID    string    `json:"lessonId"`
		Completed   bool      `json:"completed"`
		CompletedAt null.Time `json:"completedAt"`
		Rating      null.Int  `json:"rating"`
	}

	// ProgressChange carries the fields of an upsert; null-invalid fields are
	// left untouched on an existing record.
	ProgressChange struct {
		UserID      string
		LessonID    string
		Completed   bool
		CompletedAt null.Time
		Rating      null.Int
	}

	// Comment is append-only; CreatedAt is immutable once created.
	Comment struct {
		ID        string    `json:"id"`
		LessonID  string    `json:"lessonId"`
		UserID    string    `json:"userId"`
		Content   string    `json:"content"`
		CreatedAt time.Time `json:"createdAt"`
	}

	CommentWithAuthor struct {
		Comment
		UserName string `json:"userName"`
	}

	// Note is the user's single free-text note on a lesson; UpdatedAt is
	// refreshed on every write.
	Note struct {
		ID        string    `json:"id"`
		LessonID  string    `json:"lessonId"`
		UserID    string    `json:"userId"`
		Content   string    `json:"content"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
)

type CompleteLesson struct {
	LessonID string `json:"lessonId" validate:"required"`
}

func (cl *CompleteLesson) Validate(validate *validator.Validate) error {
	return validate.Struct(cl)
}

type RateLesson struct {
	LessonID string `json:"lessonId" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

func (rl *RateLesson) Validate(validate *validator.Validate) error {
	return validate.Struct(rl)
}

type NewComment struct {
	LessonID string `json:"lessonId" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Content = core.CleanString(nc.Content)
	return validate.Struct(nc)
}

type SaveNote struct {
	LessonID string `json:"lessonId" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

func (sn *SaveNote) Validate(validate *validator.Validate) error {
	return validate.Struct(sn)
}
