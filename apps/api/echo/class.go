package echoapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/services/spreadsheet"
)

type classApi struct {
	svc      class.Service
	usrSvc   user.Service
	validate *validator.Validate
}

func registerClassAPI(g *echo.Group, auth echo.MiddlewareFunc, deps Deps) {
	api := classApi{
		svc:      deps.ClassSvc,
		usrSvc:   deps.UserSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/classes", auth)
	cg.POST("", api.create, adminMiddleware())
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update, adminMiddleware())
	cg.DELETE("/:id", api.destroy, adminMiddleware())
	cg.POST("/:id/members", api.addMembers, adminMiddleware())
	cg.DELETE("/:id/members", api.removeMembers, adminMiddleware())
	cg.GET("/:id/roster", api.roster)
}

func (api *classApi) create(ctx echo.Context) error {
	var data class.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	cls, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) query(ctx echo.Context) error {
	filter, err := bindClassFilter(ctx)
	if err != nil {
		return err
	}
	filter.Clean()

	classes, err := api.svc.Query(ctx.Request().Context(), getContextUser(ctx), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []class.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := api.svc.GetForUser(ctx.Request().Context(), getContextUser(ctx), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) update(ctx echo.Context) error {
	cls, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding class")
	}

	var data class.UpdateClass
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err = data.Validate(ctx.Request().Context(), cls, api.validate, api.svc); err != nil {
		return err
	}

	cls, err = api.svc.Update(ctx.Request().Context(), cls, data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *classApi) addMembers(ctx echo.Context) error {
	cls, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding class")
	}

	var data class.Members
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Members")
	}

	cls, err = api.svc.AddMembers(ctx.Request().Context(), cls, data)
	if err != nil {
		return errors.Wrap(err, "adding class members")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) removeMembers(ctx echo.Context) error {
	cls, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding class")
	}

	data := class.Members{
		TeacherIDs: queryList(ctx, "teacher_id"),
		StudentIDs: queryList(ctx, "student_id"),
	}
	cls, err = api.svc.RemoveMembers(ctx.Request().Context(), cls, data)
	if err != nil {
		return errors.Wrap(err, "removing class members")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) roster(ctx echo.Context) error {
	ctxUsr := getContextUser(ctx)
	cls, err := api.svc.GetForUser(ctx.Request().Context(), ctxUsr, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding class")
	}
	if !(ctxUsr.IsAdmin() || cls.HasTeacher(ctxUsr.ID)) {
		return errHttpForbidden
	}

	teachers, err := api.usrSvc.GetManyByID(ctx.Request().Context(), cls.TeacherIDs)
	if err != nil {
		return errors.Wrap(err, "finding teachers")
	}
	students, err := api.usrSvc.GetManyByID(ctx.Request().Context(), cls.StudentIDs)
	if err != nil {
		return errors.Wrap(err, "finding students")
	}

	var buf bytes.Buffer
	if err = sheetsvc.WriteRoster(&buf, cls, teachers, students); err != nil {
		return errors.Wrap(err, "writing roster sheet")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "roster-"+cls.ID+".xlsx"))
	return ctx.Blob(http.StatusOK, sheetsvc.ContentType, buf.Bytes())
}
