// controllers/service.go
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

// GetServices lists the active service catalog.
func GetServices(c *gin.Context) {
	var catalog []models.Service
	if err := config.DB.Where("is_active = ?", true).Find(&catalog).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	c.JSON(http.StatusOK, catalog)
}

func GetService(c *gin.Context) {
	var service models.Service
	if err := config.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	c.JSON(http.StatusOK, service)
}

// GetServicePricing returns the resolved price map for the caller's branch.
// Clients with no fixed branch get the branch-agnostic defaults unless a
// branchId query parameter names one.
func GetServicePricing(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	branchID := c.Query("branchId")
	if branchID == "" {
		branchID = user.BranchID
	}

	c.JSON(http.StatusOK, gin.H{
		"branchId": branchID,
		"pricing":  pricingService.PriceMapFor(branchID),
	})
}

// GetServicePrice resolves one service's price at a branch. The branchId
// query parameter wins over the caller's fixed branch.
func GetServicePrice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	branchID := c.Query("branchId")
	if branchID == "" {
		branchID = user.BranchID
	}

	c.JSON(http.StatusOK, gin.H{
		"serviceId": c.Param("id"),
		"branchId":  branchID,
		"price":     pricingService.ResolvePrice(c.Param("id"), branchID),
	})
}

// GetBranches lists active branches.
func GetBranches(c *gin.Context) {
	var branches []models.Branch
	if err := config.DB.Where("is_active = ?", true).Find(&branches).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve branches")
		return
	}
	c.JSON(http.StatusOK, branches)
}
