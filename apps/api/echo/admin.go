package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/user"
)

type adminApi struct {
	usrSvc   user.ServiceInterface
	crsSvc   course.ServiceInterface
	validate *validator.Validate
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := adminApi{
		usrSvc:   deps.UserSvc,
		crsSvc:   deps.CourseSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/admin", jwt, adminMiddleware())

	ag.GET("/stats", api.stats)

	ag.GET("/courses", api.queryCourses)
	ag.POST("/courses", api.createCourse)
	ag.PUT("/courses/:id", api.updateCourse)
	ag.DELETE("/courses/:id", api.destroyCourse)

	ag.GET("/modules", api.queryModules)
	ag.POST("/modules", api.createModule)
	ag.PUT("/modules/:id", api.updateModule)
	ag.DELETE("/modules/:id", api.destroyModule)

	ag.GET("/lessons", api.queryLessons)
	ag.POST("/lessons", api.createLesson)
	ag.PUT("/lessons/:id", api.updateLesson)
	ag.DELETE("/lessons/:id", api.destroyLesson)

	ag.GET("/users", api.queryUsers)
	ag.POST("/users", api.createUser)
	ag.PUT("/users/:id", api.updateUser)
	ag.DELETE("/users/:id", api.destroyUser)
}

// Stats

type StatsResponse struct {
	Courses int `json:"totalCourses"`
	Modules int `json:"totalModules"`
	Lessons int `json:"totalLessons"`
	Users   int `json:"totalUsers"`
}

func (api *adminApi) stats(ctx echo.Context) error {
	courses, err := api.crsSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	modules, err := api.crsSvc.QueryAllModules()
	if err != nil {
		return errors.Wrap(err, "querying modules")
	}
	lessons, err := api.crsSvc.QueryAllLessons()
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	users, err := api.usrSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying users")
	}

	return ctx.JSON(http.StatusOK, StatsResponse{
		Courses: len(courses),
		Modules: len(modules),
		Lessons: len(lessons),
		Users:   len(users),
	})
}

// Courses

func (api *adminApi) queryCourses(ctx echo.Context) error {
	courses, err := api.crsSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *adminApi) createCourse(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate, api.crsSvc); err != nil {
		return err
	}

	crs, err := api.crsSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *adminApi) updateCourse(ctx echo.Context) error {
	crs, err := api.crsSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(crs, api.validate, api.crsSvc); err != nil {
		return err
	}

	crs, err = api.crsSvc.Update(crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *adminApi) destroyCourse(ctx echo.Context) error {
	if err := api.crsSvc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Modules

func (api *adminApi) queryModules(ctx echo.Context) error {
	modules, err := api.crsSvc.QueryAllModules()
	if err != nil {
		return errors.Wrap(err, "querying modules")
	}
	if modules == nil {
		modules = []course.Module{}
	}
	return ctx.JSON(http.StatusOK, modules)
}

func (api *adminApi) createModule(ctx echo.Context) error {
	var data course.NewModule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewModule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	mod, err := api.crsSvc.CreateModule(data)
	if err != nil {
		return errors.Wrap(err, "creating module")
	}
	return ctx.JSON(http.StatusCreated, mod)
}

func (api *adminApi) updateModule(ctx echo.Context) error {
	var data course.UpdateModule
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateModule")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	mod, err := api.crsSvc.UpdateModule(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating module")
	}
	return ctx.JSON(http.StatusOK, mod)
}

func (api *adminApi) destroyModule(ctx echo.Context) error {
	if err := api.crsSvc.DeleteModule(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting module")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Lessons

func (api *adminApi) queryLessons(ctx echo.Context) error {
	lessons, err := api.crsSvc.QueryAllLessons()
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []course.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *adminApi) createLesson(ctx echo.Context) error {
	var data course.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lsn, err := api.crsSvc.CreateLesson(data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, lsn)
}

func (api *adminApi) updateLesson(ctx echo.Context) error {
	var data course.UpdateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lsn, err := api.crsSvc.UpdateLesson(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, lsn)
}

func (api *adminApi) destroyLesson(ctx echo.Context) error {
	if err := api.crsSvc.DeleteLesson(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Users

func (api *adminApi) queryUsers(ctx echo.Context) error {
	users, err := api.usrSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []user.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *adminApi) createUser(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate, api.usrSvc); err != nil {
		return err
	}

	usr, err := api.usrSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *adminApi) updateUser(ctx echo.Context) error {
	usr, err := api.usrSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}

	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(usr, api.validate, api.usrSvc); err != nil {
		return err
	}

	usr, err = api.usrSvc.Update(usr.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

// destroyUser deletes the user; admins cannot delete themselves.
func (api *adminApi) destroyUser(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if ctx.Param("id") == claims.Subject {
		return errHttpForbidden
	}

	if err := api.usrSvc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}
