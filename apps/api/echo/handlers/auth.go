package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursedesk/coursedesk/apps/api/echo/helpers"
	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
)

type authAPI struct {
	svc  *record.Service
	conf *core.Config
}

// RegisterAuthAPI mounts the login endpoint, authenticating against the
// student collection.
func RegisterAuthAPI(g *echo.Group, svc *record.Service, conf *core.Config) {
	api := authAPI{svc: svc, conf: conf}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.OPTIONS("/login", preflight)
}

func (api *authAPI) login(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := helpers.GenerateToken(api.conf, helpers.GetUserClaims(api.conf, usr))
	if err != nil {
		return err
	}

	return helpers.Respond(ctx, http.StatusOK, "Login successful", LoginResponse{User: usr, Token: token})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginResponse struct {
		User  record.Record `json:"user"`
		Token string        `json:"token"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}
