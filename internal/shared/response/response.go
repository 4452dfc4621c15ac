// Package response renders the dashboard success envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK writes {"success": true, "<key>": payload} with status 200.
func OK(c *gin.Context, key string, payload any) {
	Write(c, http.StatusOK, "", key, payload)
}

// Created writes the envelope with status 201 and a message.
func Created(c *gin.Context, message, key string, payload any) {
	Write(c, http.StatusCreated, message, key, payload)
}

// Message writes {"success": true, "message": message} with status 200.
func Message(c *gin.Context, message string) {
	Write(c, http.StatusOK, message, "", nil)
}

// Write renders the envelope. Empty message or key omit the field.
func Write(c *gin.Context, status int, message, key string, payload any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if key != "" {
		body[key] = payload
	}
	c.JSON(status, body)
}
