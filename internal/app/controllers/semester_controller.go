package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/middleware"
)

// SemesterController handles semester endpoints
type SemesterController struct {
	semesterService *services.SemesterService
}

// NewSemesterController creates a new SemesterController
func NewSemesterController(semesterService *services.SemesterService) *SemesterController {
	return &SemesterController{semesterService: semesterService}
}

// CreateSemester handles semester creation with its initial course set.
func (c *SemesterController) CreateSemester(ctx *gin.Context) {
	var req dto.CreateSemesterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid semester data", err)
		return
	}

	semester, err := c.semesterService.CreateSemester(ctx, req.Year, models.Term(req.Term), req.CourseIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, semester)
}

// GetSemesterByID retrieves a semester with its courses.
func (c *SemesterController) GetSemesterByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "semester")
	if !ok {
		return
	}

	semester, err := c.semesterService.GetSemester(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, semester)
}

// GetAllSemesters retrieves all semesters.
func (c *SemesterController) GetAllSemesters(ctx *gin.Context) {
	semesters, err := c.semesterService.GetAllSemesters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, semesters)
}

// UpdateSemesterCourses replaces a semester's course offering and reports
// the cascaded deletions.
func (c *SemesterController) UpdateSemesterCourses(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "semester")
	if !ok {
		return
	}

	var req dto.UpdateSemesterCoursesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid semester course data", err)
		return
	}

	report, err := c.semesterService.UpdateCourses(ctx, id, req.CourseIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, report)
}

// DeleteSemester deletes a semester.
func (c *SemesterController) DeleteSemester(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "semester")
	if !ok {
		return
	}

	if err := c.semesterService.DeleteSemester(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil)
}
