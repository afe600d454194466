package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/student"
)

type studentApi struct {
	svc      student.ServiceInterface
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{
		svc:      deps.StudentSvc,
		validate: deps.Validate,
	}

	ag := g.Group("", jwt)
	ag.POST("/progress/complete", api.completeLesson)
	ag.POST("/progress/rate", api.rateLesson)
	ag.GET("/comments/:lessonId", api.queryComments)
	ag.POST("/comments", api.createComment)
	ag.GET("/notes/:lessonId", api.retrieveNote)
	ag.POST("/notes", api.saveNote)
}

func (api *studentApi) completeLesson(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data student.CompleteLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CompleteLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.CompleteLesson(claims.Subject, data.LessonID)
	if err != nil {
		return errors.Wrap(err, "completing lesson")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *studentApi) rateLesson(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data student.RateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RateLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.RateLesson(claims.Subject, data.LessonID, data.Rating)
	if err != nil {
		return errors.Wrap(err, "rating lesson")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *studentApi) queryComments(ctx echo.Context) error {
	comments, err := api.svc.QueryCommentsByLesson(ctx.Param("lessonId"))
	if err != nil {
		return errors.Wrap(err, "querying comments")
	}
	if comments == nil {
		comments = []student.CommentWithAuthor{}
	}
	return ctx.JSON(http.StatusOK, comments)
}

func (api *studentApi) createComment(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data student.NewComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cmt, err := api.svc.AddComment(claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "adding comment")
	}
	return ctx.JSON(http.StatusOK, cmt)
}

// retrieveNote returns the caller's note on the lesson, or a JSON `null` when
// no note has been saved yet.
func (api *studentApi) retrieveNote(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	note, err := api.svc.NoteForLesson(claims.Subject, ctx.Param("lessonId"))
	if err != nil {
		if errors.Cause(err) == student.ErrNoteNotFound {
			return ctx.JSON(http.StatusOK, nil)
		}
		return errors.Wrap(err, "finding note")
	}
	return ctx.JSON(http.StatusOK, note)
}

func (api *studentApi) saveNote(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data student.SaveNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveNote")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	note, err := api.svc.SaveNote(claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "saving note")
	}
	return ctx.JSON(http.StatusOK, note)
}
