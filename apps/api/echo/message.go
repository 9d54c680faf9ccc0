package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/message"
	"github.com/trezcool/ujumbe/core/suggest"
)

type messageApi struct {
	svc        message.Service
	suggestSvc suggest.Service
	validate   *validator.Validate
}

func registerMessageAPI(g *echo.Group, auth echo.MiddlewareFunc, deps Deps) {
	api := messageApi{
		svc:        deps.MessageSvc,
		suggestSvc: deps.SuggestSvc,
		validate:   deps.Validate,
	}

	mg := g.Group("/messages", auth)
	mg.POST("", api.send)
	mg.GET("", api.query)
	mg.GET("/unread-count", api.unreadCount)

	dg := mg.Group("/:id", api.objectMiddleware)
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/read", api.markRead)
	dg.GET("/suggestions", api.suggestions)
}

// objectMiddleware puts the message in the context when the user takes part in it.
func (api *messageApi) objectMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		msg, err := api.svc.GetForUser(ctx.Request().Context(), getContextUser(ctx), ctx.Param("id"))
		if err != nil {
			return errors.Wrap(err, "finding message")
		}
		ctx.Set(objectContextKey, msg)
		return next(ctx)
	}
}

func (api *messageApi) send(ctx echo.Context) error {
	var data message.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	msg, err := api.svc.Send(ctx.Request().Context(), getContextUser(ctx), data)
	if err != nil {
		return errors.Wrap(err, "sending message")
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api *messageApi) query(ctx echo.Context) error {
	filter, err := bindMessageFilter(ctx)
	if err != nil {
		return err
	}

	msgs, err := api.svc.Query(ctx.Request().Context(), getContextUser(ctx), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying messages")
	}
	if msgs == nil {
		msgs = []message.Message{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *messageApi) unreadCount(ctx echo.Context) error {
	count, err := api.svc.UnreadCount(ctx.Request().Context(), getContextUser(ctx))
	if err != nil {
		return errors.Wrap(err, "counting unread messages")
	}
	return ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

func (api *messageApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ctx.Get(objectContextKey))
}

func (api *messageApi) update(ctx echo.Context) error {
	msg := ctx.Get(objectContextKey).(message.Message)

	var data message.UpdateMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMessage")
	}
	if err := data.Validate(msg, api.validate); err != nil {
		return err
	}

	msg, err := api.svc.Update(ctx.Request().Context(), getContextUser(ctx), msg, data)
	if err != nil {
		return errors.Wrap(err, "updating message")
	}
	return ctx.JSON(http.StatusOK, msg)
}

func (api *messageApi) destroy(ctx echo.Context) error {
	msg := ctx.Get(objectContextKey).(message.Message)
	if err := api.svc.Delete(ctx.Request().Context(), getContextUser(ctx), msg); err != nil {
		return errors.Wrap(err, "deleting message")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *messageApi) markRead(ctx echo.Context) error {
	msg := ctx.Get(objectContextKey).(message.Message)
	msg, err := api.svc.MarkRead(ctx.Request().Context(), getContextUser(ctx), msg)
	if err != nil {
		return errors.Wrap(err, "marking message as read")
	}
	return ctx.JSON(http.StatusOK, msg)
}

func (api *messageApi) suggestions(ctx echo.Context) error {
	ctxUsr := getContextUser(ctx)
	msg := ctx.Get(objectContextKey).(message.Message)

	ok, err := api.svc.IsRecipient(ctx.Request().Context(), ctxUsr, msg)
	if err != nil {
		return errors.Wrap(err, "checking message recipient")
	}
	if !ok {
		return errHttpForbidden
	}

	req := suggest.Request{
		Text:     core.PlainText(msg.Body),
		Language: ctx.QueryParam("lang"),
	}
	if err = req.Validate(api.validate); err != nil {
		return err
	}

	sug, err := api.suggestSvc.Suggest(ctx.Request().Context(), req, ctxUsr.Language)
	if err != nil {
		return errors.Wrap(err, "suggesting replies")
	}
	return ctx.JSON(http.StatusOK, sug)
}

type CountResponse struct {
	Count int `json:"count"`
}
