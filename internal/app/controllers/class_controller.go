package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/middleware"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
)

// ClassController handles scheduled class endpoints
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// CreateClass schedules a class.
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid class data", err)
		return
	}

	class, err := c.classService.CreateClass(ctx, &models.Class{
		Number:     req.Number,
		CourseID:   req.CourseID,
		SemesterID: req.SemesterID,
		LecturerID: req.LecturerID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, class)
}

// GetClassByID retrieves a class by ID.
func (c *ClassController) GetClassByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "class")
	if !ok {
		return
	}

	class, err := c.classService.GetClass(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, class)
}

// GetAllClasses retrieves every scheduled class. With ?available=true it
// instead lists the classes the calling student is not yet enrolled in.
func (c *ClassController) GetAllClasses(ctx *gin.Context) {
	if ctx.Query("available") == "true" {
		c.GetAvailableClasses(ctx)
		return
	}

	classes, err := c.classService.GetAllClasses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, classes)
}

// FilterClasses retrieves the classes of a course in a semester.
func (c *ClassController) FilterClasses(ctx *gin.Context) {
	var req dto.ClassFilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid class filter", err)
		return
	}

	classes, err := c.classService.FilterClasses(ctx, req.CourseID, req.SemesterID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, classes)
}

// GetAvailableClasses retrieves the classes the calling student can still
// enroll in.
func (c *ClassController) GetAvailableClasses(ctx *gin.Context) {
	_, email, role, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}
	if role != models.RoleStudent {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	classes, err := c.classService.GetAvailableClasses(ctx, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, classes)
}

// UpdateClass updates a scheduled class.
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "class")
	if !ok {
		return
	}

	var req dto.CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid class data", err)
		return
	}

	class, err := c.classService.UpdateClass(ctx, &models.Class{
		ID:         id,
		Number:     req.Number,
		CourseID:   req.CourseID,
		SemesterID: req.SemesterID,
		LecturerID: req.LecturerID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, class)
}

// DeleteClass deletes a class.
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "class")
	if !ok {
		return
	}

	if err := c.classService.DeleteClass(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil)
}
