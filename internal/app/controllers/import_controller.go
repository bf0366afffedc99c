package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/services"
	"github.com/ekurt/gradebook/internal/middleware"
)

// ImportController handles the bulk student import endpoint
type ImportController struct {
	importService *services.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.ImportService) *ImportController {
	return &ImportController{importService: importService}
}

// ImportStudents accepts an xlsx upload under the "file" form field and
// imports its rows.
func (c *ImportController) ImportStudents(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file upload")
		errorDetail = errorDetail.WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unsupported file type")
		errorDetail = errorDetail.WithDetails("Only .xlsx uploads are accepted")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.importService.ImportStudents(ctx, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusAccepted, result)
}
