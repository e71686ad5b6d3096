package controller

import (
	"github.com/Ecospace254/employee-sub000/core/controller"
	"github.com/Ecospace254/employee-sub000/core/errors"
	"github.com/Ecospace254/employee-sub000/modules/user/repository"

	"github.com/labstack/echo/v4"
)

// UserController serves the minimal user listing used by invite pickers.
type UserController struct {
	controller.BaseController
	Repo repository.UserRepositoryInterface
}

func NewUserController(repo repository.UserRepositoryInterface) *UserController {
	return &UserController{
		BaseController: controller.NewBaseController(),
		Repo:           repo,
	}
}

// ListUsers handles GET /api/users
// @Summary List users
// @Description List user summaries for invite pickers
// @Tags User
// @Security SessionCookie
// @Produce json
// @Param search query string false "Name or email substring"
// @Success 200 {array} entity.Summary
// @Failure 401 {object} controller.ErrorResponse
// @Router /users [get]
func (c *UserController) ListUsers(ctx echo.Context) error {
	users, err := c.Repo.ListSummaries(ctx.Request().Context(), ctx.QueryParam("search"))
	if err != nil {
		return c.InternalServerError(errors.ErrGetFailed, "Failed to list users")
	}
	return c.SuccessResponse(ctx, users, "Success")
}
