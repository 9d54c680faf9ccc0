package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/message"
	"github.com/trezcool/ujumbe/core/notification"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/suggest"
	"github.com/trezcool/ujumbe/core/user"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errAccountDeactivated   = echo.NewHTTPError(http.StatusForbidden, "account deactivated")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
	errSuggestionsDisabled  = echo.NewHTTPError(http.StatusServiceUnavailable, suggest.ErrDisabled.Error())
)

// httpError maps the errors of the domain services to their HTTP counterpart.
func httpError(err error) (*echo.HTTPError, bool) {
	switch errors.Cause(err) {
	case core.ErrForbidden:
		return errHttpForbidden, true
	case core.ErrNotFound, user.ErrNotFound, class.ErrNotFound, message.ErrNotFound,
		notification.ErrNotFound, setting.ErrNotFound, file.ErrNotFound:
		return errHttpNotFound, true
	case suggest.ErrDisabled:
		return errSuggestionsDisabled, true
	}
	return nil, false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if herr, ok := httpError(err); ok {
			err = herr
		}

		if msgs, ok := core.ValidationMessages(err, translator); ok {
			code = http.StatusBadRequest
			message = msgs
		} else if origErr, ok := errors.Cause(err).(*echo.HTTPError); ok {
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
			} else {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
				code = origErr.Code
				message = origErr.Message
			}
		} else { // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			usr := getContextUser(ctx)
			if usr.ID == "" {
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					usr.ID = claims.Subject
					usr.Username = claims.Username
					usr.Email = claims.Email
				}
			}
			logger.Error(msg, errors.Wrap(err, msg), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
