package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Siddhant-kochhar/goatfit/config"
	"github.com/Siddhant-kochhar/goatfit/models"
	"github.com/Siddhant-kochhar/goatfit/services"

	"github.com/gin-gonic/gin"
)

// DevController exposes testing hooks that exercise the alert pipeline
// without waiting for real Google Fit data.
type DevController struct {
	Monitor *services.MonitorService
}

func NewDevController(monitor *services.MonitorService) *DevController {
	return &DevController{Monitor: monitor}
}

type simulateInput struct {
	VitalType string  `json:"vital_type" binding:"required"`
	Value     float64 `json:"value" binding:"required"`
}

// POST /dev/simulate — feed one fake reading through the full classify →
// persist → alert path. Emails really go out if the value qualifies.
func (d *DevController) Simulate(c *gin.Context) {
	uid := c.GetUint("userID")

	var input simulateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.GetUserByID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	reading := models.VitalReading{
		UserID:     uid,
		Type:       input.VitalType,
		Value:      input.Value,
		Unit:       models.UnitFor(input.VitalType),
		RecordedAt: time.Now(),
	}
	if err := d.Monitor.Process(c.Request.Context(), user, []models.VitalReading{reading}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	bands := services.BandsForUser(config.DB, uid)
	c.JSON(http.StatusOK, gin.H{
		"message":  "simulation processed",
		"severity": services.Classify(input.Value, bands[input.VitalType]),
	})
}

// GET /dev/quick-test/:heart_rate — classify a value against the caller's
// bands without sending anything.
func (d *DevController) QuickTest(c *gin.Context) {
	uid := c.GetUint("userID")

	value, err := strconv.ParseFloat(c.Param("heart_rate"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "heart_rate must be a number"})
		return
	}

	bands := services.BandsForUser(config.DB, uid)
	severity := services.Classify(value, bands[models.VitalHeartRate])

	c.JSON(http.StatusOK, gin.H{
		"heart_rate":  value,
		"severity":    severity,
		"would_alert": models.SeverityRank(severity) >= models.SeverityRank(models.SeverityCritical),
		"band":        bands[models.VitalHeartRate],
	})
}
