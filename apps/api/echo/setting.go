package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core/setting"
)

type settingApi struct {
	svc      setting.Service
	validate *validator.Validate
}

func registerSettingAPI(g *echo.Group, auth echo.MiddlewareFunc, deps Deps) {
	api := settingApi{
		svc:      deps.SettingSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/settings", auth)
	sg.GET("", api.query)
	sg.GET("/:key", api.retrieve)
	sg.PUT("/:key", api.upsert, adminMiddleware())
	sg.DELETE("/:key", api.destroy, adminMiddleware())
}

func (api *settingApi) query(ctx echo.Context) error {
	settings, err := api.svc.Query(ctx.Request().Context(), getContextUser(ctx))
	if err != nil {
		return errors.Wrap(err, "querying settings")
	}
	if settings == nil {
		settings = []setting.Setting{}
	}
	return ctx.JSON(http.StatusOK, settings)
}

func (api *settingApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context(), getContextUser(ctx), ctx.Param("key"))
	if err != nil {
		return errors.Wrap(err, "finding setting")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingApi) upsert(ctx echo.Context) error {
	var data setting.UpsertSetting
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpsertSetting")
	}
	data.Key = ctx.Param("key")
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Upsert(ctx.Request().Context(), getContextUser(ctx), data)
	if err != nil {
		return errors.Wrap(err, "upserting setting")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("key")); err != nil {
		return errors.Wrap(err, "deleting setting")
	}
	return ctx.NoContent(http.StatusNoContent)
}
