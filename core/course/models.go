package course

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

// Course statuses
const (
	StatusActive = "active"
	StatusDraft  = "draft"
)

type (
	Course struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		CoverImage  string `json:"coverImage"`
		Slug        string `json:"slug"`
		Status      string `json:"status"`
		Order       int    `json:"order"`
	}

	Module struct {
		ID          string      `json:"id"`
		CourseID    string      `json:"courseId"`
		Title       string      `json:"title"`
		Description null.String `json:"description"`
		Order       int         `json:"order"`
	}

	Lesson struct {
		ID          string      `json:"id"`
		ModuleID    string      `json:"moduleId"`
		Title       string      `json:"title"`
		Description null.String `json:"description"`
		VideoURL    string      `json:"videoUrl"`
		Duration    null.String `json:"duration"`
		ReleaseAt   time.Time   `json:"releaseAt"`
		Attachments []string    `json:"attachments"`
		Order       int         `json:"order"`
	}
)

// Composed read types returned by the assembly path.
type (
	// CourseWithProgress is a course list row annotated with the requesting
	// user's completion percentage.
	CourseWithProgress struct {
		Course
		Progress int `json:"progress"`
	}

	LessonWithProgress struct {
		Lesson
		Completed bool     `json:"completed"`
		Rating    null.Int `json:"rating"`
		IsLocked  bool     `json:"isLocked"`
	}

	ModuleWithLessons struct {
		Module
		Lessons []LessonWithProgress `json:"lessons"`
	}

	CourseWithModules struct {
		Course
		Modules  []ModuleWithLessons `json:"modules"`
		Progress int                 `json:"progress"`
	}
)

// NewCourse contains information needed to create a new Course.
// Status defaults to "draft" when omitted.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	CoverImage  string `json:"coverImage" validate:"omitempty,url"`
	Slug        string `json:"slug" validate:"required,slug"`
	Status      string `json:"status" validate:"omitempty,oneof=active draft"`
	Order       int    `json:"order" validate:"min=0"`
}

func (nc *NewCourse) Validate(validate *validator.Validate, svc ServiceInterface) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Slug = core.CleanString(nc.Slug, true /* lower */)
	if nc.Slug == "" {
		nc.Slug = core.Slugify(nc.Title)
	}

	if err := validate.Struct(nc); err != nil {
		return err
	}
	return svc.CheckSlugUniqueness(nc.Slug)
}

// UpdateCourse defines what information may be provided to modify an existing
// Course. Zero-valued fields are left untouched.
type UpdateCourse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage" validate:"omitempty,url"`
	Slug        string `json:"slug" validate:"omitempty,slug"`
	Status      string `json:"status" validate:"omitempty,oneof=active draft"`
	Order       *int   `json:"order" validate:"omitempty,min=0"`
}

func (uc *UpdateCourse) Validate(origCrs Course, validate *validator.Validate, svc ServiceInterface) error {
	uc.Title = core.CleanString(uc.Title)
	uc.Slug = core.CleanString(uc.Slug, true /* lower */)

	if err := validate.Struct(uc); err != nil {
		return err
	}
	if uc.Slug != "" && uc.Slug != origCrs.Slug {
		return svc.CheckSlugUniqueness(uc.Slug)
	}
	return nil
}

type NewModule struct {
	CourseID    string  `json:"courseId" validate:"required"`
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Order       int     `json:"order" validate:"min=0"`
}

func (nm *NewModule) Validate(validate *validator.Validate) error {
	nm.Title = core.CleanString(nm.Title)
	return validate.Struct(nm)
}

type UpdateModule struct {
	CourseID    string  `json:"courseId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Order       *int    `json:"order" validate:"omitempty,min=0"`
}

func (um *UpdateModule) Validate(validate *validator.Validate) error {
	um.Title = core.CleanString(um.Title)
	return validate.Struct(um)
}

type NewLesson struct {
	ModuleID    string    `json:"moduleId" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description *string   `json:"description"`
	VideoURL    string    `json:"videoUrl" validate:"required,url"`
	Duration    *string   `json:"duration"`
	ReleaseAt   time.Time `json:"releaseAt" validate:"required"`
	Attachments []string  `json:"attachments"`
	Order       int       `json:"order" validate:"min=0"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	return validate.Struct(nl)
}

type UpdateLesson struct {
	ModuleID    string     `json:"moduleId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	VideoURL    string     `json:"videoUrl" validate:"omitempty,url"`
	Duration    *string    `json:"duration"`
	ReleaseAt   *time.Time `json:"releaseAt"`
	Attachments []string   `json:"attachments"`
	Order       *int       `json:"order" validate:"omitempty,min=0"`
}

func (ul *UpdateLesson) Validate(validate *validator.Validate) error {
	ul.Title = core.CleanString(ul.Title)
	return validate.Struct(ul)
}
