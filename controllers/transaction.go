// controllers/transaction.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"
)

// GetTransactions lists the caller's point-of-sale history, newest first.
// Transactions are read-only here.
func GetTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var transactions []models.Transaction
	err := config.DB.Where("client_id = ?", user.ID.String()).
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func GetTransaction(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	err := config.DB.Where("id = ? AND client_id = ?", c.Param("id"), user.ID.String()).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	c.JSON(http.StatusOK, transaction)
}
