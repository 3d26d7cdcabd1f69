package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/khanhlt/learnboard/internal/apperr"
	"github.com/khanhlt/learnboard/internal/dto"
	"github.com/khanhlt/learnboard/internal/middleware"
	"github.com/khanhlt/learnboard/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
	roleService service.RoleService
}

func NewAuthController(authService service.AuthService, roleService service.RoleService) *AuthController {
	return &AuthController{authService: authService, roleService: roleService}
}

// Signup godoc
// @Summary Create an account
// @Description Register a student or teacher account and receive a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Account details"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing fields or unknown role"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	resp, err := c.authService.Signup(req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Signup failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Login godoc
// @Summary Log in
// @Description Verify credentials and receive a session token. Failures do
// @Description not reveal whether the email or the password was wrong.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	resp, err := c.authService.Login(req)
	if err != nil {
		if errors.Is(err, apperr.ErrAuth) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid email or password"})
			return
		}
		log.Error().Err(err).Msg("Login failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: "Failed to log in"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Landing godoc
// @Summary Resolve the dashboard for the current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.LandingResponse
// @Failure 403 {object} dto.ErrorResponse "Unknown role on the session"
// @Router /auth/landing [get]
func (c *AuthController) Landing(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	dashboard, err := c.roleService.ResolveLanding(user.Role)
	if err != nil {
		log.Error().Err(err).Uint("accountID", user.ID).Msg("Session carries an unknown role")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, dto.LandingResponse{Dashboard: dashboard})
}
