package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "lend-circle.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Anything that is not an AppError is
// treated as an internal fault.
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}
