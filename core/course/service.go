package course

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound       = errors.New("course not found")
	ErrModuleNotFound = errors.New("module not found")
	ErrLessonNotFound = errors.New("lesson not found")
	ErrSlugExists     = errors.New("a course with this slug already exists")
)

type (
	Repository interface {
		CheckSlugUniqueness(slug string, excludedCourses ...Course) error
		CreateCourse(course Course) (Course, error)
		// QueryAllCourses returns all courses sorted ascending by Order.
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		GetCourseBySlug(slug string) (Course, error)
		UpdateCourse(id string, uc UpdateCourse) (Course, error)
		DeleteCourse(id string) error

		CreateModule(module Module) (Module, error)
		QueryAllModules() ([]Module, error)
		// QueryModulesByCourse returns the course's modules sorted ascending by Order.
		QueryModulesByCourse(courseID string) ([]Module, error)
		UpdateModule(id string, um UpdateModule) (Module, error)
		DeleteModule(id string) error

		CreateLesson(lesson Lesson) (Lesson, error)
		QueryAllLessons() ([]Lesson, error)
		// QueryLessonsByModule returns the module's lessons sorted ascending by Order.
		QueryLessonsByModule(moduleID string) ([]Lesson, error)
		GetLessonByID(id string) (Lesson, error)
		UpdateLesson(id string, ul UpdateLesson) (Lesson, error)
		DeleteLesson(id string) error
	}

	// LessonProgress is the per-lesson completion view the assembly path needs;
	// the student activity store provides it.
	LessonProgress struct {
		LessonID  string
		Completed bool
		Rating    null.Int
	}

	ProgressReader interface {
		QueryLessonProgressByUser(userID string) ([]LessonProgress, error)
	}

	ServiceInterface interface {
		CheckSlugUniqueness(slug string, exclCourses ...Course) error

		Create(nc NewCourse) (Course, error)
		QueryAll() ([]Course, error)
		GetByID(id string) (Course, error)
		Update(id string, uc UpdateCourse) (Course, error)
		Delete(id string) error

		CreateModule(nm NewModule) (Module, error)
		QueryAllModules() ([]Module, error)
		UpdateModule(id string, um UpdateModule) (Module, error)
		DeleteModule(id string) error

		CreateLesson(nl NewLesson) (Lesson, error)
		QueryAllLessons() ([]Lesson, error)
		GetLessonByID(id string) (Lesson, error)
		UpdateLesson(id string, ul UpdateLesson) (Lesson, error)
		DeleteLesson(id string) error

		QueryActive(userID string) ([]CourseWithProgress, error)
		AssembleBySlug(slug, userID string, now time.Time) (CourseWithModules, error)
	}

	Service struct {
		repo     Repository
		progress ProgressReader
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, progress ProgressReader) *Service {
	return &Service{repo: repo, progress: progress}
}

func (svc *Service) CheckSlugUniqueness(slug string, exclCourses ...Course) error {
	if err := svc.repo.CheckSlugUniqueness(slug, exclCourses...); err != nil {
		if errors.Cause(err) == ErrSlugExists {
			return core.NewValidationError(err, core.FieldError{Field: "slug", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Catalog CRUD

func (svc *Service) Create(nc NewCourse) (Course, error) {
	status := nc.Status
	if status == "" {
		status = StatusDraft
	}
	crs := Course{
		Title:       nc.Title,
		Description: nc.Description,
		CoverImage:  nc.CoverImage,
		Slug:        nc.Slug,
		Status:      status,
		Order:       nc.Order,
	}
	return svc.repo.CreateCourse(crs)
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) Update(id string, uc UpdateCourse) (Course, error) {
	return svc.repo.UpdateCourse(id, uc)
}

// Delete removes the course only; its modules and lessons are left in place.
// There is deliberately no cascade (kept from the original system; see DESIGN.md).
func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteCourse(id)
}

func (svc *Service) CreateModule(nm NewModule) (Module, error) {
	mod := Module{
		CourseID:    nm.CourseID,
		Title:       nm.Title,
		Description: null.StringFromPtr(nm.Description),
		Order:       nm.Order,
	}
	return svc.repo.CreateModule(mod)
}

func (svc *Service) QueryAllModules() ([]Module, error) {
	return svc.repo.QueryAllModules()
}

func (svc *Service) UpdateModule(id string, um UpdateModule) (Module, error) {
	return svc.repo.UpdateModule(id, um)
}

func (svc *Service) DeleteModule(id string) error {
	return svc.repo.DeleteModule(id)
}

func (svc *Service) CreateLesson(nl NewLesson) (Lesson, error) {
	attachments := nl.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	lsn := Lesson{
		ModuleID:    nl.ModuleID,
		Title:       nl.Title,
		Description: null.StringFromPtr(nl.Description),
		VideoURL:    nl.VideoURL,
		Duration:    null.StringFromPtr(nl.Duration),
		ReleaseAt:   nl.ReleaseAt,
		Attachments: attachments,
		Order:       nl.Order,
	}
	return svc.repo.CreateLesson(lsn)
}

func (svc *Service) QueryAllLessons() ([]Lesson, error) {
	return svc.repo.QueryAllLessons()
}

func (svc *Service) GetLessonByID(id string) (Lesson, error) {
	return svc.repo.GetLessonByID(id)
}

func (svc *Service) UpdateLesson(id string, ul UpdateLesson) (Lesson, error) {
	return svc.repo.UpdateLesson(id, ul)
}

func (svc *Service) DeleteLesson(id string) error {
	return svc.repo.DeleteLesson(id)
}

// Read path

// QueryActive returns all active courses annotated with the user's completion
// percentage, in catalog order.
func (svc *Service) QueryActive(userID string) ([]CourseWithProgress, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}

	completed, err := svc.completedSet(userID)
	if err != nil {
		return nil, err
	}

	result := make([]CourseWithProgress, 0, len(courses))
	for _, crs := range courses {
		if crs.Status != StatusActive {
			continue
		}
		total, done, err := svc.countLessons(crs.ID, completed)
		if err != nil {
			return nil, err
		}
		result = append(result, CourseWithProgress{Course: crs, Progress: Percent(total, done)})
	}
	return result, nil
}

// AssembleBySlug loads the full course tree and annotates every lesson with
// the user's completion, rating and lock state. The same `now` and the same
// progress snapshot are used for all lessons so one response is internally
// consistent.
func (svc *Service) AssembleBySlug(slug, userID string, now time.Time) (CourseWithModules, error) {
	crs, err := svc.repo.GetCourseBySlug(slug)
	if err != nil {
		return CourseWithModules{}, err
	}

	records, err := svc.progress.QueryLessonProgressByUser(userID)
	if err != nil {
		return CourseWithModules{}, errors.Wrap(err, "querying user progress")
	}
	byLesson := make(map[string]LessonProgress, len(records))
	for _, rec := range records {
		byLesson[rec.LessonID] = rec
	}

	modules, err := svc.repo.QueryModulesByCourse(crs.ID)
	if err != nil {
		return CourseWithModules{}, errors.Wrap(err, "querying modules")
	}

	var totalLessons, completedLessons int
	tree := make([]ModuleWithLessons, 0, len(modules))
	for _, mod := range modules {
		lessons, err := svc.repo.QueryLessonsByModule(mod.ID)
		if err != nil {
			return CourseWithModules{}, errors.Wrap(err, "querying lessons")
		}

		annotated := make([]LessonWithProgress, 0, len(lessons))
		for _, lsn := range lessons {
			rec := byLesson[lsn.ID]
			totalLessons++
			if rec.Completed {
				completedLessons++
			}
			annotated = append(annotated, LessonWithProgress{
				Lesson:    lsn,
				Completed: rec.Completed,
				Rating:    rec.Rating,
				IsLocked:  Locked(lsn, now),
			})
		}
		tree = append(tree, ModuleWithLessons{Module: mod, Lessons: annotated})
	}

	return CourseWithModules{
		Course:   crs,
		Modules:  tree,
		Progress: Percent(totalLessons, completedLessons),
	}, nil
}

func (svc *Service) completedSet(userID string) (map[string]bool, error) {
	records, err := svc.progress.QueryLessonProgressByUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying user progress")
	}
	set := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.Completed {
			set[rec.LessonID] = true
		}
	}
	return set, nil
}

func (svc *Service) countLessons(courseID string, completed map[string]bool) (total, done int, err error) {
	modules, err := svc.repo.QueryModulesByCourse(courseID)
	if err != nil {
		return 0, 0, errors.Wrap(err, "querying modules")
	}
	for _, mod := range modules {
		lessons, err := svc.repo.QueryLessonsByModule(mod.ID)
		if err != nil {
			return 0, 0, errors.Wrap(err, "querying lessons")
		}
		total += len(lessons)
		for _, lsn := range lessons {
			if completed[lsn.ID] {
				done++
			}
		}
	}
	return total, done, nil
}
