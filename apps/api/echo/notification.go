package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core/notification"
)

type notificationApi struct {
	svc      notification.Service
	validate *validator.Validate
}

func registerNotificationAPI(g *echo.Group, auth echo.MiddlewareFunc, deps Deps) {
	api := notificationApi{
		svc:      deps.NotificationSvc,
		validate: deps.Validate,
	}

	ng := g.Group("/notifications", auth)
	ng.POST("", api.create, staffMiddleware)
	ng.GET("", api.query)
	ng.GET("/unread-count", api.unreadCount)

	dg := ng.Group("/:id", api.objectMiddleware)
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/read", api.markRead)
}

func (api *notificationApi) objectMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		n, err := api.svc.GetForUser(ctx.Request().Context(), getContextUser(ctx), ctx.Param("id"))
		if err != nil {
			return errors.Wrap(err, "finding notification")
		}
		ctx.Set(objectContextKey, n)
		return next(ctx)
	}
}

func (api *notificationApi) create(ctx echo.Context) error {
	var data notification.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Create(ctx.Request().Context(), getContextUser(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating notification")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *notificationApi) query(ctx echo.Context) error {
	filter, err := bindNotificationFilter(ctx)
	if err != nil {
		return err
	}

	ns, err := api.svc.Query(ctx.Request().Context(), getContextUser(ctx), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	if ns == nil {
		ns = []notification.Notification{}
	}
	return ctx.JSON(http.StatusOK, ns)
}

func (api *notificationApi) unreadCount(ctx echo.Context) error {
	count, err := api.svc.UnreadCount(ctx.Request().Context(), getContextUser(ctx))
	if err != nil {
		return errors.Wrap(err, "counting unread notifications")
	}
	return ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

func (api *notificationApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ctx.Get(objectContextKey))
}

func (api *notificationApi) update(ctx echo.Context) error {
	n := ctx.Get(objectContextKey).(notification.Notification)

	var data notification.UpdateNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNotification")
	}
	if err := data.Validate(n, api.validate); err != nil {
		return err
	}

	n, err := api.svc.Update(ctx.Request().Context(), getContextUser(ctx), n, data)
	if err != nil {
		return errors.Wrap(err, "updating notification")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *notificationApi) destroy(ctx echo.Context) error {
	n := ctx.Get(objectContextKey).(notification.Notification)
	if err := api.svc.Delete(ctx.Request().Context(), getContextUser(ctx), n); err != nil {
		return errors.Wrap(err, "deleting notification")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	n := ctx.Get(objectContextKey).(notification.Notification)
	n, err := api.svc.MarkRead(ctx.Request().Context(), getContextUser(ctx), n)
	if err != nil {
		return errors.Wrap(err, "marking notification as read")
	}
	return ctx.JSON(http.StatusOK, n)
}
