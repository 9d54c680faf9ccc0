package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core/suggest"
)

type suggestApi struct {
	svc      suggest.Service
	validate *validator.Validate
}

func registerSuggestAPI(g *echo.Group, auth echo.MiddlewareFunc, deps Deps) {
	api := suggestApi{
		svc:      deps.SuggestSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/ai", auth)
	ag.POST("/suggestions", api.suggest)
	ag.GET("/categories", api.categories)
}

func (api *suggestApi) suggest(ctx echo.Context) error {
	var data suggest.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to suggest.Request")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sug, err := api.svc.Suggest(ctx.Request().Context(), data, getContextUser(ctx).Language)
	if err != nil {
		return errors.Wrap(err, "suggesting replies")
	}
	return ctx.JSON(http.StatusOK, sug)
}

func (api *suggestApi) categories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Categories())
}
