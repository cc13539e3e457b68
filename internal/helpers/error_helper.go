package helpers

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error: message,
	})
}

// RespondWithErrorCode also surfaces the backend error code, used where the
// provider code is part of the contract (duplicate slug on create).
func RespondWithErrorCode(c *gin.Context, statusCode int, message, code string) {
	c.JSON(statusCode, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
