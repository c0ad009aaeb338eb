package helpers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the uniform envelope every endpoint replies with. All three
// keys are always present; data is null when an operation has no payload.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

var (
	NotFoundHttpErr  = echo.NewHTTPError(http.StatusNotFound, "not found")
	ForbiddenHttpErr = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// Respond writes a success envelope.
func Respond(ctx echo.Context, code int, message string, data interface{}) error {
	return ctx.JSON(code, Response{Success: true, Message: message, Data: data})
}

// RespondData writes a success envelope carrying only data.
func RespondData(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, Response{Success: true, Data: data})
}
