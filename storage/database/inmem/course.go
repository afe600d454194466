package inmemdb

import (
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	courses *courseTable
	modules *moduleTable
	lessons *lessonTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{courses: db.course, modules: db.module, lessons: db.lesson}
}

// Courses

func (repo *courseRepository) queryCourses() []course.Course {
	courses := make([]course.Course, 0, len(repo.courses.table))
	for _, c := range repo.courses.table {
		courses = append(courses, *c)
	}
	sort.SliceStable(courses, func(i, j int) bool { return courses[i].Order < courses[j].Order })
	return courses
}

func (repo *courseRepository) CheckSlugUniqueness(slug string, excludedCourses ...course.Course) error {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	excluded := make(map[string]bool, len(excludedCourses))
	for _, crs := range excludedCourses {
		excluded[crs.ID] = true
	}

	for _, crs := range repo.queryCourses() {
		if crs.Slug == slug && !excluded[crs.ID] {
			return course.ErrSlugExists
		}
	}
	return nil
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	crs.ID = newPK()
	repo.courses.table[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()
	return repo.queryCourses(), nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	if crs, ok := repo.courses.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) GetCourseBySlug(slug string) (course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	for _, crs := range repo.queryCourses() {
		if crs.Slug == slug {
			return crs, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(id string, uc course.UpdateCourse) (course.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	// only save set fields
	origCrs, ok := repo.courses.table[id]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	if uc.Title != "" {
		origCrs.Title = uc.Title
	}
	if uc.Description != "" {
		origCrs.Description = uc.Description
	}
	if uc.CoverImage != "" {
		origCrs.CoverImage = uc.CoverImage
	}
	if uc.Slug != "" {
		origCrs.Slug = uc.Slug
	}
	if uc.Status != "" {
		origCrs.Status = uc.Status
	}
	if uc.Order != nil {
		origCrs.Order = *uc.Order
	}

	repo.courses.table[id] = origCrs
	return *origCrs, nil
}

// DeleteCourse removes the course record only; deleting an unknown id is a no-op.
func (repo *courseRepository) DeleteCourse(id string) error {
	repo.courses.Lock()
	defer repo.courses.Unlock()
	delete(repo.courses.table, id)
	return nil
}

// Modules

func (repo *courseRepository) queryModules() []course.Module {
	modules := make([]course.Module, 0, len(repo.modules.table))
	for _, m := range repo.modules.table {
		modules = append(modules, *m)
	}
	sort.SliceStable(modules, func(i, j int) bool { return modules[i].Order < modules[j].Order })
	return modules
}

func (repo *courseRepository) CreateModule(mod course.Module) (course.Module, error) {
	repo.modules.Lock()
	defer repo.modules.Unlock()

	mod.ID = newPK()
	repo.modules.table[mod.ID] = &mod
	return mod, nil
}

func (repo *courseRepository) QueryAllModules() ([]course.Module, error) {
	repo.modules.RLock()
	defer repo.modules.RUnlock()
	return repo.queryModules(), nil
}

func (repo *courseRepository) QueryModulesByCourse(courseID string) ([]course.Module, error) {
	repo.modules.RLock()
	defer repo.modules.RUnlock()

	var modules []course.Module
	for _, mod := range repo.queryModules() {
		if mod.CourseID == courseID {
			modules = append(modules, mod)
		}
	}
	return modules, nil
}

func (repo *courseRepository) UpdateModule(id string, um course.UpdateModule) (course.Module, error) {
	repo.modules.Lock()
	defer repo.modules.Unlock()

	origMod, ok := repo.modules.table[id]
	if !ok {
		return course.Module{}, course.ErrModuleNotFound
	}
	if um.CourseID != "" {
		origMod.CourseID = um.CourseID
	}
	if um.Title != "" {
		origMod.Title = um.Title
	}
	if um.Description != nil {
		origMod.Description = null.StringFromPtr(um.Description)
	}
	if um.Order != nil {
		origMod.Order = *um.Order
	}

	repo.modules.table[id] = origMod
	return *origMod, nil
}

func (repo *courseRepository) DeleteModule(id string) error {
	repo.modules.Lock()
	defer repo.modules.Unlock()
	delete(repo.modules.table, id)
	return nil
}

// Lessons

func (repo *courseRepository) queryLessons() []course.Lesson {
	lessons := make([]course.Lesson, 0, len(repo.lessons.table))
	for _, l := range repo.lessons.table {
		lessons = append(lessons, *l)
	}
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
	return lessons
}

func (repo *courseRepository) CreateLesson(lsn course.Lesson) (course.Lesson, error) {
	repo.lessons.Lock()
	defer repo.lessons.Unlock()

	lsn.ID = newPK()
	repo.lessons.table[lsn.ID] = &lsn
	return lsn, nil
}

func (repo *courseRepository) QueryAllLessons() ([]course.Lesson, error) {
	repo.lessons.RLock()
	defer repo.lessons.RUnlock()
	return repo.queryLessons(), nil
}

func (repo *courseRepository) QueryLessonsByModule(moduleID string) ([]course.Lesson, error) {
	repo.lessons.RLock()
	defer repo.lessons.RUnlock()

	var lessons []course.Lesson
	for _, lsn := range repo.queryLessons() {
		if lsn.ModuleID == moduleID {
			lessons = append(lessons, lsn)
		}
	}
	return lessons, nil
}

func (repo *courseRepository) GetLessonByID(id string) (course.Lesson, error) {
	repo.lessons.RLock()
	defer repo.lessons.RUnlock()

	if lsn, ok := repo.lessons.table[id]; ok {
		return *lsn, nil
	}
	return course.Lesson{}, course.ErrLessonNotFound
}

func (repo *courseRepository) UpdateLesson(id string, ul course.UpdateLesson) (course.Lesson, error) {
	repo.lessons.Lock()
	defer repo.lessons.Unlock()

	origLsn, ok := repo.lessons.table[id]
	if !ok {
		return course.Lesson{}, course.ErrLessonNotFound
	}
	if ul.ModuleID != "" {
		origLsn.ModuleID = ul.ModuleID
	}
	if ul.Title != "" {
		origLsn.Title = ul.Title
	}
	if ul.Description != nil {
		origLsn.Description = null.StringFromPtr(ul.Description)
	}
	if ul.VideoURL != "" {
		origLsn.VideoURL = ul.VideoURL
	}
	if ul.Duration != nil {
		origLsn.Duration = null.StringFromPtr(ul.Duration)
	}
	if ul.ReleaseAt != nil {
		origLsn.ReleaseAt = *ul.ReleaseAt
	}
	if ul.Attachments != nil {
		origLsn.Attachments = ul.Attachments
	}
	if ul.Order != nil {
		origLsn.Order = *ul.Order
	}

	repo.lessons.table[id] = origLsn
	return *origLsn, nil
}

func (repo *courseRepository) DeleteLesson(id string) error {
	repo.lessons.Lock()
	defer repo.lessons.Unlock()
	delete(repo.lessons.table, id)
	return nil
}
