package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/middleware"
)

// CourseController handles course catalog endpoints
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse handles course creation.
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid course data", err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &models.Course{Code: req.Code, Name: req.Name})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, course)
}

// GetCourseByID retrieves a course by ID.
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course)
}

// GetAllCourses retrieves the course catalog.
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, courses)
}

// UpdateCourse updates an existing course.
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course")
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid course data", err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, &models.Course{ID: id, Code: req.Code, Name: req.Name})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, course)
}

// DeleteCourse deletes a course.
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil)
}
