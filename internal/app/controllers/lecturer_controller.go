package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/middleware"
)

// LecturerController handles lecturer endpoints
type LecturerController struct {
	lecturerService *services.LecturerService
}

// NewLecturerController creates a new LecturerController
func NewLecturerController(lecturerService *services.LecturerService) *LecturerController {
	return &LecturerController{lecturerService: lecturerService}
}

func lecturerFromRequest(req *dto.CreateLecturerRequest) (*models.Lecturer, error) {
	dob, err := time.Parse(dto.DateLayout, req.Dob)
	if err != nil {
		return nil, err
	}
	return &models.Lecturer{
		StaffID:     req.StaffID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: dob,
	}, nil
}

// CreateLecturer creates a lecturer and provisions their account.
func (c *LecturerController) CreateLecturer(ctx *gin.Context) {
	var req dto.CreateLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid lecturer data", err)
		return
	}

	lecturer, err := lecturerFromRequest(&req)
	if err != nil {
		bindError(ctx, "Invalid date of birth", err)
		return
	}

	lecturer, err = c.lecturerService.CreateLecturer(ctx, lecturer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, lecturer)
}

// GetLecturerByID retrieves a lecturer by ID.
func (c *LecturerController) GetLecturerByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "lecturer")
	if !ok {
		return
	}

	lecturer, err := c.lecturerService.GetLecturer(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, lecturer)
}

// GetAllLecturers retrieves all lecturers.
func (c *LecturerController) GetAllLecturers(ctx *gin.Context) {
	lecturers, err := c.lecturerService.GetAllLecturers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, lecturers)
}

// UpdateLecturer updates a lecturer record.
func (c *LecturerController) UpdateLecturer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "lecturer")
	if !ok {
		return
	}

	var req dto.CreateLecturerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, "Invalid lecturer data", err)
		return
	}

	lecturer, err := lecturerFromRequest(&req)
	if err != nil {
		bindError(ctx, "Invalid date of birth", err)
		return
	}
	lecturer.ID = id

	lecturer, err = c.lecturerService.UpdateLecturer(ctx, lecturer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, lecturer)
}

// DeleteLecturer deletes a lecturer and their paired account.
func (c *LecturerController) DeleteLecturer(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "lecturer")
	if !ok {
		return
	}

	if err := c.lecturerService.DeleteLecturer(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil)
}
