package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Siddhant-kochhar/goatfit/services"

	"github.com/gin-gonic/gin"
)

type VitalsController struct {
	Vitals  *services.VitalsService
	Monitor *services.MonitorService
}

func NewVitalsController(vitals *services.VitalsService, monitor *services.MonitorService) *VitalsController {
	return &VitalsController{Vitals: vitals, Monitor: monitor}
}

// GET /vitals/latest
func (v *VitalsController) Latest(c *gin.Context) {
	uid := c.GetUint("userID")

	latest, err := v.Vitals.Latest(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vitals": latest})
}

// GET /vitals/history?type=heart_rate&hours=24
func (v *VitalsController) History(c *gin.Context) {
	uid := c.GetUint("userID")

	hours, _ := strconv.Atoi(c.DefaultQuery("hours", "24"))
	readings, err := v.Vitals.History(c.Request.Context(), uid, c.Query("type"), hours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"readings": readings})
}

// GET /vitals/weekly?week_start=2026-08-24
func (v *VitalsController) Weekly(c *gin.Context) {
	uid := c.GetUint("userID")

	weekStart := time.Now().AddDate(0, 0, -6)
	if raw := c.Query("week_start"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	overview, err := v.Vitals.Weekly(c.Request.Context(), uid, weekStart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, overview)
}

// POST /vitals/sync — run a check cycle for the caller right now instead
// of waiting for the next tick.
func (v *VitalsController) Sync(c *gin.Context) {
	uid := c.GetUint("userID")

	user, err := services.GetUserByID(uid)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if !user.FitnessLinked {
		c.JSON(http.StatusConflict, gin.H{"error": "no fitness account linked"})
		return
	}

	if err := v.Monitor.CheckUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sync complete"})
}
