package course_test

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
	testutil "github.com/trezcool/darasa/tests"
)

func setup(t *testing.T) (course.ServiceInterface, course.Repository, student.Repository) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	stdRepo := inmemdb.NewStudentRepository(db)
	crsRepo := inmemdb.NewCourseRepository(db)
	return course.NewService(crsRepo, stdRepo), crsRepo, stdRepo
}

func completeLesson(t *testing.T, repo student.Repository, userID, lessonID string) {
	t.Helper()
	if _, err := repo.UpsertProgress(student.ProgressChange{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: null.TimeFrom(time.Now().UTC()),
	}); err != nil {
		t.Fatalf("UpsertProgress() failed: %v", err)
	}
}

// Two modules, five lessons of which one is future-dated; two completed.
// The completion percentage counts all five lessons: 2/5 = 40%.
func TestService_QueryActive(t *testing.T) {
	svc, crsRepo, stdRepo := setup(t)
	now := time.Now().UTC()

	crs := testutil.CreateCourse(t, crsRepo, "Photography", "photography", course.StatusActive, 1)
	draft := testutil.CreateCourse(t, crsRepo, "Unpublished", "unpublished", course.StatusDraft, 2)
	mod1 := testutil.CreateModule(t, crsRepo, crs.ID, "Basics", 1)
	mod2 := testutil.CreateModule(t, crsRepo, crs.ID, "Advanced", 2)

	lsn1 := testutil.CreateLesson(t, crsRepo, mod1.ID, "Lesson 1", now.Add(-72*time.Hour), 1)
	testutil.CreateLesson(t, crsRepo, mod1.ID, "Lesson 2", now.Add(-48*time.Hour), 2)
	lsn3 := testutil.CreateLesson(t, crsRepo, mod1.ID, "Lesson 3", now.Add(-24*time.Hour), 3)
	testutil.CreateLesson(t, crsRepo, mod2.ID, "Lesson 4", now.Add(-time.Hour), 1)
	testutil.CreateLesson(t, crsRepo, mod2.ID, "Lesson 5", now.Add(24*time.Hour), 2) // locked

	completeLesson(t, stdRepo, "u1", lsn1.ID)
	completeLesson(t, stdRepo, "u1", lsn3.ID)

	courses, err := svc.QueryActive("u1")
	if err != nil {
		t.Fatalf("QueryActive() failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("QueryActive() returned %d courses, want 1", len(courses))
	}
	if courses[0].ID == draft.ID {
		t.Error("QueryActive() returned a draft course")
	}
	if courses[0].Progress != 40 {
		t.Errorf("Progress = %d, want 40", courses[0].Progress)
	}

	// a user with no progress sees 0%
	courses, err = svc.QueryActive("u2")
	if err != nil {
		t.Fatalf("QueryActive() failed: %v", err)
	}
	if courses[0].Progress != 0 {
		t.Errorf("Progress = %d, want 0", courses[0].Progress)
	}
}

func TestService_AssembleBySlug(t *testing.T) {
	svc, crsRepo, stdRepo := setup(t)
	now := time.Now().UTC()

	crs := testutil.CreateCourse(t, crsRepo, "Photography", "photography", course.StatusActive, 1)
	mod1 := testutil.CreateModule(t, crsRepo, crs.ID, "Basics", 1)
	mod2 := testutil.CreateModule(t, crsRepo, crs.ID, "Advanced", 2)

	lsn1 := testutil.CreateLesson(t, crsRepo, mod1.ID, "Lesson 1", now.Add(-72*time.Hour), 1)
	lsn2 := testutil.CreateLesson(t, crsRepo, mod1.ID, "Lesson 2", now.Add(-48*time.Hour), 2)
	lsn3 := testutil.CreateLesson(t, crsRepo, mod1.ID, "Lesson 3", now.Add(-24*time.Hour), 3)
	lsn4 := testutil.CreateLesson(t, crsRepo, mod2.ID, "Lesson 4", now.Add(-time.Hour), 1)
	lsn5 := testutil.CreateLesson(t, crsRepo, mod2.ID, "Lesson 5", now.Add(24*time.Hour), 2)

	completeLesson(t, stdRepo, "u1", lsn1.ID)
	completeLesson(t, stdRepo, "u1", lsn3.ID)
	if _, err := stdRepo.UpsertProgress(student.ProgressChange{
		UserID:    "u1",
		LessonID:  lsn1.ID,
		Completed: true,
		Rating:    null.IntFrom(5),
	}); err != nil {
		t.Fatalf("UpsertProgress() failed: %v", err)
	}

	tree, err := svc.AssembleBySlug("photography", "u1", now)
	if err != nil {
		t.Fatalf("AssembleBySlug() failed: %v", err)
	}

	if tree.Progress != 40 {
		t.Errorf("Progress = %d, want 40", tree.Progress)
	}
	if len(tree.Modules) != 2 {
		t.Fatalf("got %d modules, want 2", len(tree.Modules))
	}
	if tree.Modules[0].ID != mod1.ID || tree.Modules[1].ID != mod2.ID {
		t.Error("modules are not in catalog order")
	}

	want := map[string]struct {
		completed bool
		rating    null.Int
		locked    bool
	}{
		lsn1.ID: {completed: true, rating: null.IntFrom(5)},
		lsn2.ID: {},
		lsn3.ID: {completed: true},
		lsn4.ID: {},
		lsn5.ID: {locked: true},
	}
	for _, mod := range tree.Modules {
		for _, lsn := range mod.Lessons {
			w := want[lsn.ID]
			if lsn.Completed != w.completed {
				t.Errorf("lesson %q: Completed = %v, want %v", lsn.Title, lsn.Completed, w.completed)
			}
			if lsn.Rating != w.rating {
				t.Errorf("lesson %q: Rating = %v, want %v", lsn.Title, lsn.Rating, w.rating)
			}
			if lsn.IsLocked != w.locked {
				t.Errorf("lesson %q: IsLocked = %v, want %v", lsn.Title, lsn.IsLocked, w.locked)
			}
		}
	}

	if _, err = svc.AssembleBySlug("nope", "u1", now); err != course.ErrNotFound {
		t.Errorf("AssembleBySlug(unknown slug) error = %v, want ErrNotFound", err)
	}
}

func TestService_Create_defaultsToDraft(t *testing.T) {
	svc, _, _ := setup(t)

	crs, err := svc.Create(course.NewCourse{
		Title:       "New Course",
		Description: "desc",
		Slug:        "new-course",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if crs.Status != course.StatusDraft {
		t.Errorf("Status = %q, want %q", crs.Status, course.StatusDraft)
	}
}

// Deleting a course leaves its modules and lessons in place; there is no
// cascade.
func TestService_Delete_noCascade(t *testing.T) {
	svc, crsRepo, _ := setup(t)
	now := time.Now().UTC()

	crs := testutil.CreateCourse(t, crsRepo, "Photography", "photography", course.StatusActive, 1)
	mod := testutil.CreateModule(t, crsRepo, crs.ID, "Basics", 1)
	testutil.CreateLesson(t, crsRepo, mod.ID, "Lesson 1", now, 1)

	if err := svc.Delete(crs.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.GetByID(crs.ID); err != course.ErrNotFound {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}

	modules, err := crsRepo.QueryModulesByCourse(crs.ID)
	if err != nil {
		t.Fatalf("QueryModulesByCourse() failed: %v", err)
	}
	if len(modules) != 1 {
		t.Errorf("got %d modules after course delete, want 1", len(modules))
	}
	lessons, err := crsRepo.QueryLessonsByModule(mod.ID)
	if err != nil {
		t.Fatalf("QueryLessonsByModule() failed: %v", err)
	}
	if len(lessons) != 1 {
		t.Errorf("got %d lessons after course delete, want 1", len(lessons))
	}

	// deleting an unknown id is a no-op
	if err := svc.Delete("nope"); err != nil {
		t.Errorf("Delete(unknown id) error = %v, want nil", err)
	}
}
