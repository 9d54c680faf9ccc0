package echoapi

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/message"
)

type fileApi struct {
	svc    file.Service
	msgSvc message.Service
}

func registerFileAPI(g *echo.Group, auth echo.MiddlewareFunc, deps Deps) {
	api := fileApi{
		svc:    deps.FileSvc,
		msgSvc: deps.MessageSvc,
	}

	fg := g.Group("/files", auth)
	fg.POST("", api.upload)

	dg := fg.Group("/:id", api.objectMiddleware)
	dg.GET("", api.retrieve)
	dg.GET("/download", api.download)
	dg.DELETE("", api.destroy)
}

// objectMiddleware puts the file in the context when the user may read it:
// owners, admins and the participants of a message carrying it.
func (api *fileApi) objectMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctxUsr := getContextUser(ctx)
		f, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
		if err != nil {
			return errors.Wrap(err, "finding file")
		}
		if !api.svc.CanManage(ctxUsr, f) {
			ok, err := api.msgSvc.CanAccessFile(ctx.Request().Context(), ctxUsr, f.ID)
			if err != nil {
				return errors.Wrap(err, "checking file access")
			}
			if !ok {
				return errHttpNotFound
			}
		}
		ctx.Set(objectContextKey, f)
		return next(ctx)
	}
}

func (api *fileApi) upload(ctx echo.Context) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewFieldError("file", "this field is required")
	}
	if fh.Size > api.svc.MaxUploadSize(ctx.Request().Context()) {
		return core.NewFieldError("file", "file is too large")
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	f, err := api.svc.Upload(ctx.Request().Context(), getContextUser(ctx), fh.Filename, src)
	if err != nil {
		return errors.Wrap(err, "uploading file")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *fileApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, ctx.Get(objectContextKey))
}

func (api *fileApi) download(ctx echo.Context) error {
	f := ctx.Get(objectContextKey).(file.File)
	direct, err := api.svc.DirectURL(ctx.Request().Context(), f)
	if err != nil {
		return errors.Wrap(err, "getting file URL")
	}
	if direct != "" {
		return ctx.Redirect(http.StatusTemporaryRedirect, direct)
	}

	rc, err := api.svc.Open(ctx.Request().Context(), f)
	if err != nil {
		return errors.Wrap(err, "opening file")
	}
	defer rc.Close()

	ctx.Response().Header().Set(
		echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": f.Filename}),
	)
	return ctx.Stream(http.StatusOK, f.ContentType, rc)
}

func (api *fileApi) destroy(ctx echo.Context) error {
	f := ctx.Get(objectContextKey).(file.File)
	if !api.svc.CanManage(getContextUser(ctx), f) {
		return errHttpForbidden
	}
	if err := api.svc.Delete(ctx.Request().Context(), f); err != nil {
		return errors.Wrap(err, "deleting file")
	}
	return ctx.NoContent(http.StatusNoContent)
}
