package controllers

import (
	"net/http"

	"github.com/Siddhant-kochhar/goatfit/config"
	"github.com/Siddhant-kochhar/goatfit/models"
	"github.com/Siddhant-kochhar/goatfit/services"

	"github.com/gin-gonic/gin"
)

// POST /monitoring/start
func StartMonitoring(c *gin.Context) {
	uid := c.GetUint("userID")
	if err := services.SetMonitoringEnabled(uid, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "monitoring enabled"})
}

// POST /monitoring/stop
func StopMonitoring(c *gin.Context) {
	uid := c.GetUint("userID")
	if err := services.SetMonitoringEnabled(uid, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "monitoring disabled"})
}

// GET /monitoring/status
func MonitoringStatus(c *gin.Context) {
	uid := c.GetUint("userID")

	user, err := services.GetUserByID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var contactCount int64
	config.DB.Model(&models.EmergencyContact{}).Where("user_id = ?", uid).Count(&contactCount)

	c.JSON(http.StatusOK, gin.H{
		"monitoring_enabled": user.MonitoringEnabled,
		"fitness_linked":     user.FitnessLinked,
		"check_interval_sec": user.CheckIntervalSec,
		"last_health_check":  user.LastHealthCheck,
		"emergency_contacts": contactCount,
		"thresholds":         services.BandsForUser(config.DB, uid),
	})
}

type thresholdInput struct {
	VitalType     string  `json:"vital_type" binding:"required"`
	WarningLow    float64 `json:"warning_low"`
	WarningHigh   float64 `json:"warning_high"`
	CriticalLow   float64 `json:"critical_low"`
	CriticalHigh  float64 `json:"critical_high"`
	EmergencyLow  float64 `json:"emergency_low"`
	EmergencyHigh float64 `json:"emergency_high"`
}

type settingsInput struct {
	CheckIntervalSec int              `json:"check_interval_sec"`
	Thresholds       []thresholdInput `json:"thresholds"`
}

// GET /monitoring/settings
func GetMonitoringSettings(c *gin.Context) {
	uid := c.GetUint("userID")

	user, err := services.GetUserByID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"check_interval_sec": user.CheckIntervalSec,
		"thresholds":         services.BandsForUser(config.DB, uid),
	})
}

// PUT /monitoring/settings
func UpdateMonitoringSettings(c *gin.Context) {
	uid := c.GetUint("userID")

	var input settingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.CheckIntervalSec > 0 {
		if err := services.SetCheckInterval(uid, input.CheckIntervalSec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	for _, t := range input.Thresholds {
		err := services.UpsertThreshold(uid, t.VitalType, services.Band{
			WarningLow:    t.WarningLow,
			WarningHigh:   t.WarningHigh,
			CriticalLow:   t.CriticalLow,
			CriticalHigh:  t.CriticalHigh,
			EmergencyLow:  t.EmergencyLow,
			EmergencyHigh: t.EmergencyHigh,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}
