package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/coursedesk/coursedesk/apps/api/echo/helpers"
	"github.com/coursedesk/coursedesk/core"
	"github.com/coursedesk/coursedesk/core/record"
)

// POST side operations, selected via the `action` query flag.
const (
	actionChangePassword = "change_password"
	actionComment        = "comment"
)

type resourceAPI struct {
	svc    *record.Service
	schema record.Schema
}

// RegisterResourceAPI mounts the uniform verb mapping for one record kind.
func RegisterResourceAPI(g *echo.Group, svc *record.Service) {
	api := resourceAPI{svc: svc, schema: svc.Schema()}

	rg := g.Group("/" + api.schema.Name)
	rg.GET("", api.retrieve)
	rg.POST("", api.create)
	rg.PUT("", api.update)
	rg.DELETE("", api.destroy)
	rg.OPTIONS("", preflight)

	if api.schema.HasComments() {
		cg := g.Group("/" + api.schema.Name + "/comments")
		cg.GET("", api.commentList)
		cg.DELETE("", api.commentDestroy)
		cg.OPTIONS("", preflight)
	}
}

// Handlers

// retrieve lists the collection (with optional search/sort/order), or returns
// a single record when an id query param is given.
func (api *resourceAPI) retrieve(ctx echo.Context) error {
	if id, ok := api.queryID(ctx); ok {
		rec, err := api.svc.Get(ctx.Request().Context(), id)
		if err != nil {
			return err
		}
		return helpers.RespondData(ctx, http.StatusOK, rec)
	}

	records, err := api.svc.List(ctx.Request().Context(), record.ListOptions{
		Search: ctx.QueryParam("search"),
		Sort:   ctx.QueryParam("sort"),
		Order:  ctx.QueryParam("order"),
	})
	if err != nil {
		return err
	}
	return helpers.RespondData(ctx, http.StatusOK, records)
}

func (api *resourceAPI) create(ctx echo.Context) error {
	switch ctx.QueryParam("action") {
	case actionChangePassword:
		return api.changePassword(ctx)
	case actionComment:
		return api.commentCreate(ctx)
	}

	data := record.Record{}
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	rec, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return helpers.Respond(ctx, http.StatusCreated, api.message("created successfully"), rec)
}

func (api *resourceAPI) update(ctx echo.Context) error {
	data := record.Record{}
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	id, ok := api.bodyID(data)
	if !ok {
		return api.missingIDErr()
	}
	rec, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return err
	}
	return helpers.Respond(ctx, http.StatusOK, api.message("updated successfully"), rec)
}

// destroy deletes a record by id, taken from the query or the body;
// its comments are removed with it.
func (api *resourceAPI) destroy(ctx echo.Context) error {
	id, ok := api.queryID(ctx)
	if !ok {
		data := record.Record{}
		if err := ctx.Bind(&data); err == nil {
			id, ok = api.bodyID(data)
		}
	}
	if !ok {
		return api.missingIDErr()
	}

	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}
	return helpers.Respond(ctx, http.StatusOK, api.message("deleted successfully"), nil)
}

func (api *resourceAPI) changePassword(ctx echo.Context) error {
	data := record.Record{}
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	id, ok := api.bodyID(data)
	currentPwd := data.String("current_password")
	newPwd := data.String("new_password")
	if !ok || currentPwd == "" || newPwd == "" {
		return core.NewValidationError(
			fmt.Errorf("%s, current_password, and new_password are required", api.idParam()))
	}

	if err := api.svc.ChangePassword(ctx.Request().Context(), id, currentPwd, newPwd); err != nil {
		return err
	}
	return helpers.Respond(ctx, http.StatusOK, "Password changed successfully", nil)
}

// Comment sub-resource

func (api *resourceAPI) commentList(ctx echo.Context) error {
	parentID, ok := api.queryParentID(ctx)
	if !ok {
		return core.NewValidationError(fmt.Errorf("%s is required", api.schema.CommentFK))
	}
	comments, err := api.svc.ListComments(ctx.Request().Context(), parentID)
	if err != nil {
		return err
	}
	return helpers.RespondData(ctx, http.StatusOK, comments)
}

func (api *resourceAPI) commentCreate(ctx echo.Context) error {
	data := record.Record{}
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	parentID := data.String(api.schema.CommentFK)
	if parentID == "" {
		parentID = data.String("parent_id")
	}
	if parentID == "" {
		return core.NewValidationError(fmt.Errorf("%s is required", api.schema.CommentFK))
	}

	comment, err := api.svc.CreateComment(ctx.Request().Context(), parentID, data.String("author"), data.String("text"))
	if err != nil {
		return err
	}
	return helpers.Respond(ctx, http.StatusCreated, "Comment created successfully", comment)
}

func (api *resourceAPI) commentDestroy(ctx echo.Context) error {
	id := core.CleanString(ctx.QueryParam("id"))
	if id == "" {
		id = core.CleanString(ctx.QueryParam("comment_id"))
	}
	if id == "" {
		return core.NewValidationError(fmt.Errorf("comment id is required"))
	}

	if err := api.svc.DeleteComment(ctx.Request().Context(), id); err != nil {
		return err
	}
	return helpers.Respond(ctx, http.StatusOK, "Comment deleted successfully", nil)
}

func preflight(ctx echo.Context) error {
	h := ctx.Response().Header()
	h.Set(echo.HeaderAccessControlAllowOrigin, "*")
	h.Set(echo.HeaderAccessControlAllowMethods, "GET,POST,PUT,DELETE,OPTIONS")
	h.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType+","+echo.HeaderAuthorization)
	return ctx.NoContent(http.StatusOK)
}

// Helpers

// idParam is the client-facing name of the kind's id, e.g. "student_id" for
// students and "week_id" for weeks.
func (api *resourceAPI) idParam() string {
	for alias, target := range api.schema.SortAliases {
		if target == api.schema.IDField {
			return alias
		}
	}
	return api.schema.IDField
}

// queryID accepts the kind's id under its client-facing name as well as
// the schema id field and plain "id".
func (api *resourceAPI) missingIDErr() error {
	return core.NewValidationError(fmt.Errorf("%s is required", api.idParam()))
}

func (api *resourceAPI) queryID(ctx echo.Context) (string, bool) {
	for _, param := range []string{api.idParam(), api.schema.IDField, "id"} {
		if id := core.CleanString(ctx.QueryParam(param)); id != "" {
			return id, true
		}
	}
	return "", false
}

func (api *resourceAPI) bodyID(data record.Record) (string, bool) {
	for _, param := range []string{api.idParam(), api.schema.IDField, "id"} {
		if id := core.CleanString(data.String(param)); id != "" {
			return id, true
		}
	}
	return "", false
}

func (api *resourceAPI) queryParentID(ctx echo.Context) (string, bool) {
	for _, param := range []string{api.schema.CommentFK, "parent_id"} {
		if id := core.CleanString(ctx.QueryParam(param)); id != "" {
			return id, true
		}
	}
	return "", false
}

func (api *resourceAPI) message(suffix string) string {
	s := api.schema.Singular
	return strings.ToUpper(s[:1]) + s[1:] + " " + suffix
}
