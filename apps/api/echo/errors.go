package echoapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/coursedesk/coursedesk/apps/api/echo/helpers"
	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps our
// error taxonomy onto the response envelope. Server errors are logged with
// their cause; the response body never carries internal detail.
// signalShutdown is called whenever a core shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if msg, ok := origErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			msgs := make([]string, 0, len(origErr))
			for _, vErr := range origErr {
				msgs = append(msgs, vErr.Field()+": "+vErr.Translate(core.Translator))
			}
			message = strings.Join(msgs, "; ")
		case *core.ValidationError:
			code = http.StatusBadRequest
			if origErr.Fields != nil {
				msgs := make([]string, 0, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					msgs = append(msgs, fErr.Field+": "+fErr.Error)
				}
				message = strings.Join(msgs, "; ")
			} else {
				message = origErr.Error()
			}
		case *record.ConflictError:
			code = http.StatusConflict
			message = origErr.Error()
		case *record.NotFoundError:
			code = http.StatusNotFound
			message = origErr.Error()
		default:
			switch origErr {
			case record.ErrNotFound, record.ErrCommentNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			case record.ErrInvalidCredentials:
				code = http.StatusUnauthorized
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				message = http.StatusText(code)
				logger.Error(message, errors.Wrap(err, message))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, helpers.Response{Success: false, Message: message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
