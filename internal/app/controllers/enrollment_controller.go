package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/middleware"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// CreateEnrollment enrolls a student in a class.
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid enrollment data", err)
		return
	}

	enrollment, err := c.enrollmentService.CreateEnrollment(ctx, req.StudentID, req.ClassID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, enrollment)
}

// GetEnrollmentByID retrieves an enrollment by ID.
func (c *EnrollmentController) GetEnrollmentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "enrollment")
	if !ok {
		return
	}

	_, email, role, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollment(ctx, role, email, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, enrollment)
}

// GetAllEnrollments retrieves the enrollments visible to the caller.
// Students only see their own.
func (c *EnrollmentController) GetAllEnrollments(ctx *gin.Context) {
	_, email, role, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollments, err := c.enrollmentService.ListEnrollments(ctx, role, email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, enrollments)
}

// FilterEnrollments retrieves the enrollments of a student.
func (c *EnrollmentController) FilterEnrollments(ctx *gin.Context) {
	var req dto.EnrollmentFilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid enrollment filter", err)
		return
	}

	enrollments, err := c.enrollmentService.FilterEnrollments(ctx, req.StudentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, enrollments)
}

// UpdateGrade writes an enrollment's grade. Admins may grade any
// enrollment; lecturers only enrollments of classes assigned to them.
func (c *EnrollmentController) UpdateGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "enrollment")
	if !ok {
		return
	}

	_, email, role, ok := middleware.CallerIdentity(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid grade data", err)
		return
	}

	enrollment, err := c.enrollmentService.UpdateGrade(ctx, role, email, id, req.Grade)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, enrollment)
}

// DeleteEnrollment removes an enrollment.
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "enrollment")
	if !ok {
		return
	}

	if err := c.enrollmentService.DeleteEnrollment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil)
}
