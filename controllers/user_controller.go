package controllers

import (
	"net/http"

	"github.com/Siddhant-kochhar/goatfit/services"

	"github.com/gin-gonic/gin"
)

// GET /user/profile
func GetProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	user, err := services.GetUserByID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 user.ID,
		"email":              user.Email,
		"full_name":          user.FullName,
		"fitness_linked":     user.FitnessLinked,
		"monitoring_enabled": user.MonitoringEnabled,
	})
}

type updateProfileInput struct {
	FullName string `json:"full_name" binding:"required"`
}

// PUT /user/profile
func UpdateProfile(c *gin.Context) {
	uid := c.GetUint("userID")

	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.UpdateProfile(uid, input.FullName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
