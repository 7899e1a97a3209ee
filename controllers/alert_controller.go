package controllers

import (
	"net/http"
	"strconv"

	"github.com/Siddhant-kochhar/goatfit/config"
	"github.com/Siddhant-kochhar/goatfit/models"

	"github.com/gin-gonic/gin"
)

// GET /alerts?limit=50
func ListAlerts(c *gin.Context) {
	uid := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var alerts []models.HealthAlert
	err := config.DB.
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
