// Package controllers translates HTTP requests into service calls and
// service results into the shared response envelope.
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/models/dto"
)

// parseIDParam reads the :id path parameter. A false return means the
// error response has already been written.
func parseIDParam(ctx *gin.Context, resource string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+resource+" ID")
		errorDetail = errorDetail.WithDetails(resource + " ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func bindError(ctx *gin.Context, message string, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	})
}
