// controllers/stylist.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/utils"
)

// GetStylists lists active stylists for the booking flow's assignment step.
// ?branchId= narrows the list to one branch.
func GetStylists(c *gin.Context) {
	query := config.DB.Where("role = ? AND is_active = ?", models.RoleStylist, true)
	if branchID := c.Query("branchId"); branchID != "" {
		query = query.Where("branch_id = ?", branchID)
	}

	var stylists []models.User
	if err := query.Find(&stylists).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stylists")
		return
	}

	out := make([]gin.H, 0, len(stylists))
	for _, stylist := range stylists {
		out = append(out, gin.H{
			"id":        stylist.ID,
			"firstName": stylist.FirstName,
			"lastName":  stylist.LastName,
			"branchId":  stylist.BranchID,
			"photoUrl":  stylist.PhotoURL,
		})
	}
	c.JSON(http.StatusOK, out)
}
