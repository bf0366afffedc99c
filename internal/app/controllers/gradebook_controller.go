package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/middleware"
)

// GradebookController handles the role-scoped gradebook endpoints
type GradebookController struct {
	gradebookService *services.GradebookService
}

// NewGradebookController creates a new GradebookController
func NewGradebookController(gradebookService *services.GradebookService) *GradebookController {
	return &GradebookController{gradebookService: gradebookService}
}

// GetOverview returns the classes visible to the caller with the
// semesters they span.
func (c *GradebookController) GetOverview(ctx *gin.Context) {
	_, email, role, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	overview, err := c.gradebookService.GetOverview(ctx, role, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, overview)
}

// Filter returns one class's gradebook scoped to the caller.
func (c *GradebookController) Filter(ctx *gin.Context) {
	_, email, role, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.GradebookFilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid gradebook filter", err)
		return
	}

	gradebook, err := c.gradebookService.GetClassGradebook(ctx, role, email, req.ClassID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, gradebook)
}
