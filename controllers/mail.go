// controllers/mail.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salonbook-backend/models"
)

type SendEmailInput struct {
	// Legacy clients send an smtp block; credentials now come from the
	// environment and the block is ignored
	SMTP  models.JSONB `json:"smtp"`
	Email struct {
		To      string `json:"to" binding:"required"`
		Subject string `json:"subject"`
		Text    string `json:"text"`
		HTML    string `json:"html"`
		From    string `json:"from"`
	} `json:"email" binding:"required"`
}

// SendEmail relays one transactional email.
func SendEmail(c *gin.Context) {
	var input SendEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to send email",
		})
		return
	}

	messageID, err := mailService.Send(
		input.Email.From,
		input.Email.To,
		input.Email.Subject,
		input.Email.Text,
		input.Email.HTML,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to send email",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
		"message":   "Email sent successfully",
	})
}

// Health reports liveness for the relay routes.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Email server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
