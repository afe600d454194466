package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
)

type courseApi struct {
	svc        course.ServiceInterface
	studentSvc student.ServiceInterface
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{
		svc:        deps.CourseSvc,
		studentSvc: deps.StudentSvc,
	}

	ag := g.Group("", jwt)
	ag.GET("/courses", api.query)
	ag.GET("/courses/:slug", api.retrieve)
	ag.GET("/lessons/:id", api.retrieveLesson)
}

// query lists active courses, each annotated with the caller's completion
// percentage.
func (api *courseApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	courses, err := api.svc.QueryActive(claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying active courses")
	}
	if courses == nil {
		courses = []course.CourseWithProgress{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

// retrieve returns the full course tree; one `now` is captured here so that
// all lessons in the response share the same lock clock.
func (api *courseApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	crs, err := api.svc.AssembleBySlug(ctx.Param("slug"), claims.Subject, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "assembling course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

type lessonDetailResponse struct {
	course.Lesson
	Completed bool     `json:"completed"`
	Rating    null.Int `json:"rating"`
}

func (api *courseApi) retrieveLesson(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	lsn, err := api.svc.GetLessonByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding lesson by ID")
	}

	resp := lessonDetailResponse{Lesson: lsn}
	if rec, err := api.studentSvc.LessonProgress(claims.Subject, lsn.ID); err == nil {
		resp.Completed = rec.Completed
		resp.Rating = rec.Rating
	} else if errors.Cause(err) != student.ErrProgressNotFound {
		return errors.Wrap(err, "finding lesson progress")
	}
	return ctx.JSON(http.StatusOK, resp)
}
