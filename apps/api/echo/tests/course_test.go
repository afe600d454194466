package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
	testutil "github.com/trezcool/darasa/tests"
)

func Test_courseApi_query(t *testing.T) {
	app := setup(t)
	now := time.Now().UTC()

	usr := testutil.CreateUser(t, app.usrRepo, "Amina", "amina@test.cd", "v3ry-s3cret", false)
	token := getToken(t, usr)

	crs := testutil.CreateCourse(t, app.crsRepo, "Photography", "photography", course.StatusActive, 1)
	testutil.CreateCourse(t, app.crsRepo, "Unpublished", "unpublished", course.StatusDraft, 2)
	mod := testutil.CreateModule(t, app.crsRepo, crs.ID, "Basics", 1)
	lsn1 := testutil.CreateLesson(t, app.crsRepo, mod.ID, "Lesson 1", now.Add(-time.Hour), 1)
	testutil.CreateLesson(t, app.crsRepo, mod.ID, "Lesson 2", now.Add(time.Hour), 2)

	if _, err := app.stdRepo.UpsertProgress(student.ProgressChange{
		UserID: usr.ID, LessonID: lsn1.ID, Completed: true, CompletedAt: null.TimeFrom(now),
	}); err != nil {
		t.Fatalf("UpsertProgress() failed: %v", err)
	}

	tests := []httpTest{
		{name: "Auth required", path: "/api/courses", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Active courses with progress", path: "/api/courses", token: token, wantCode: http.StatusOK,
			wantData: marchallList(t, course.CourseWithProgress{Course: crs, Progress: 50}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, tt.token)
			app.server.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_courseApi_retrieve(t *testing.T) {
	app := setup(t)
	now := time.Now().UTC()

	usr := testutil.CreateUser(t, app.usrRepo, "Amina", "amina@test.cd", "v3ry-s3cret", false)
	token := getToken(t, usr)

	crs := testutil.CreateCourse(t, app.crsRepo, "Photography", "photography", course.StatusActive, 1)
	mod := testutil.CreateModule(t, app.crsRepo, crs.ID, "Basics", 1)
	lsn1 := testutil.CreateLesson(t, app.crsRepo, mod.ID, "Lesson 1", now.Add(-time.Hour), 1)
	lsn2 := testutil.CreateLesson(t, app.crsRepo, mod.ID, "Lesson 2", now.Add(time.Hour), 2)

	if _, err := app.stdRepo.UpsertProgress(student.ProgressChange{
		UserID: usr.ID, LessonID: lsn1.ID, Completed: true, Rating: null.IntFrom(5),
	}); err != nil {
		t.Fatalf("UpsertProgress() failed: %v", err)
	}

	t.Run("not found", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/courses/nope", token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("full tree", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/courses/photography", token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}

		var resp course.CourseWithModules
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling CourseWithModules: %v", err)
		}
		if resp.ID != crs.ID || resp.Progress != 50 {
			t.Errorf("course = %q progress = %d, want %q / 50", resp.ID, resp.Progress, crs.ID)
		}
		if len(resp.Modules) != 1 || len(resp.Modules[0].Lessons) != 2 {
			t.Fatalf("tree shape = %+v", resp.Modules)
		}

		first, second := resp.Modules[0].Lessons[0], resp.Modules[0].Lessons[1]
		if first.ID != lsn1.ID || !first.Completed || first.Rating != null.IntFrom(5) || first.IsLocked {
			t.Errorf("lesson 1 = %+v", first)
		}
		if second.ID != lsn2.ID || second.Completed || !second.IsLocked {
			t.Errorf("lesson 2 = %+v", second)
		}
	})
}

func Test_courseApi_retrieveLesson(t *testing.T) {
	app := setup(t)
	now := time.Now().UTC()

	usr := testutil.CreateUser(t, app.usrRepo, "Amina", "amina@test.cd", "v3ry-s3cret", false)
	token := getToken(t, usr)

	crs := testutil.CreateCourse(t, app.crsRepo, "Photography", "photography", course.StatusActive, 1)
	mod := testutil.CreateModule(t, app.crsRepo, crs.ID, "Basics", 1)
	lsn := testutil.CreateLesson(t, app.crsRepo, mod.ID, "Lesson 1", now.Add(-time.Hour), 1)

	t.Run("untouched lesson", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/lessons/"+lsn.ID, token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			course.Lesson
			Completed bool     `json:"completed"`
			Rating    null.Int `json:"rating"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling lesson: %v", err)
		}
		if resp.ID != lsn.ID || resp.Completed || resp.Rating.Valid {
			t.Errorf("lesson = %+v", resp)
		}
	})

	t.Run("rated lesson", func(t *testing.T) {
		if _, err := app.stdRepo.UpsertProgress(student.ProgressChange{
			UserID: usr.ID, LessonID: lsn.ID, Completed: true, Rating: null.IntFrom(3),
		}); err != nil {
			t.Fatalf("UpsertProgress() failed: %v", err)
		}

		req, rec := newAuthRequest(http.MethodGet, "/api/lessons/"+lsn.ID, token)
		app.server.ServeHTTP(rec, req)
		var resp struct {
			Completed bool     `json:"completed"`
			Rating    null.Int `json:"rating"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling lesson: %v", err)
		}
		if !resp.Completed || resp.Rating != null.IntFrom(3) {
			t.Errorf("lesson = %+v", resp)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/lessons/nope", token)
		app.server.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})
}
