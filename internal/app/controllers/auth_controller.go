package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login verifies the credentials and returns a token pair.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid login data", err)
		return
	}

	tokens, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, tokens)
}

// Refresh rotates a refresh token and returns a new token pair.
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid refresh data", err)
		return
	}

	tokens, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, tokens)
}

// Logout revokes all refresh tokens of the caller.
func (c *AuthController) Logout(ctx *gin.Context) {
	userID, _, _, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.Logout(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Logged out"})
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	userID, _, _, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid password data", err)
		return
	}

	if err := c.authService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Password changed"})
}

// Profile returns the authenticated caller's account.
func (c *AuthController) Profile(ctx *gin.Context) {
	userID, _, _, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, user)
}
