// Package controller holds helpers shared by the HTTP controllers.
package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/hndoan/Lorises/internal/apperr"
	"github.com/hndoan/Lorises/internal/dto"
)

// RespondError maps a service error to its HTTP status and writes the
// standard error body.
func RespondError(ctx *gin.Context, err error) {
	ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: err.Error()})
}
