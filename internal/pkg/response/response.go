// Package response writes the uniform API envelope.
// Success: {success: true, message, data?}. Error: {success: false, message}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/core/internal/pkg/apperror"
)

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// Error translates err through the apperror taxonomy and writes the error
// envelope with the mapped status code.
func Error(c *gin.Context, err error) {
	appErr := apperror.Translate(err)
	c.AbortWithStatusJSON(appErr.Status(), gin.H{
		"success": false,
		"message": appErr.Message,
	})
}

// Fail writes an error envelope with an explicit status code.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// Unauthorized sends a 401 error envelope.
func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 error envelope.
func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// BadRequest sends a 400 error envelope.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}
