package controller

import (
	"net/http"
	"time"

	"github.com/Ecospace254/employee-sub000/core/config"
	"github.com/Ecospace254/employee-sub000/core/constants"
	"github.com/Ecospace254/employee-sub000/core/controller"
	"github.com/Ecospace254/employee-sub000/core/errors"
	"github.com/Ecospace254/employee-sub000/core/utils"
	"github.com/Ecospace254/employee-sub000/modules/auth/dto"
	"github.com/Ecospace254/employee-sub000/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// AuthController handles session login/logout HTTP requests.
type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
	}
}

func (c *AuthController) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	secure := false
	if cfg, ok := config.GetSafe(); ok {
		secure = cfg.Auth.CookieSecure
	}
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verify credentials and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	resp, token, appErr := c.AuthService.Login(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.SetCookie(c.sessionCookie(token, c.AuthService.SessionTTL()))
	return c.SuccessResponse(ctx, resp, "Logged in")
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Revoke the session token and clear the cookie
// @Tags Auth
// @Security SessionCookie
// @Success 200 {object} controller.SuccessResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	token := utils.GetTokenFromRequest(ctx, constants.SessionCookieName)
	if appErr := c.AuthService.Logout(ctx.Request().Context(), token); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.SetCookie(c.sessionCookie("", -time.Second))
	return c.SuccessResponse(ctx, nil, "Logged out")
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Description Return the session's user summary
// @Tags Auth
// @Security SessionCookie
// @Produce json
// @Success 200 {object} entity.Summary
// @Failure 401 {object} controller.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx echo.Context) error {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok || claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	user, appErr := c.AuthService.Me(ctx.Request().Context(), claims.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, user, "Success")
}
