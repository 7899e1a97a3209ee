package controllers

import (
	"net/http"

	"github.com/Siddhant-kochhar/goatfit/config"
	"github.com/Siddhant-kochhar/goatfit/models"
	"github.com/Siddhant-kochhar/goatfit/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	Push *services.PushService
}

func NewDeviceController(push *services.PushService) *DeviceController {
	return &DeviceController{Push: push}
}

type registerDeviceInput struct {
	Platform string `json:"platform" binding:"required"` // "android" | "ios"
	Token    string `json:"token" binding:"required"`
}

// POST /devices
func (d *DeviceController) Register(c *gin.Context) {
	uid := c.GetUint("userID")

	if d.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications not configured"})
		return
	}

	var input registerDeviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev, err := d.Push.RegisterDevice(uid, input.Platform, input.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dev)
}

type toggleInput struct {
	Enabled bool `json:"enabled"`
}

// POST /user/notifications/toggle — enable/disable push across all of the
// user's devices. Email alerts are unaffected.
func ToggleNotifications(c *gin.Context) {
	uid := c.GetUint("userID")

	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	if err := config.DB.Model(&models.UserDevice{}).
		Where("user_id = ?", uid).
		Update("enabled", input.Enabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notifications updated", "enabled": input.Enabled})
}
