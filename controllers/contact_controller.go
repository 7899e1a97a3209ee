package controllers

import (
	"net/http"
	"strconv"

	"github.com/Siddhant-kochhar/goatfit/models"
	"github.com/Siddhant-kochhar/goatfit/services"
	"github.com/Siddhant-kochhar/goatfit/utils"

	"github.com/gin-gonic/gin"
)

type ContactController struct {
	Mailer *utils.Mailer
}

func NewContactController(mailer *utils.Mailer) *ContactController {
	return &ContactController{Mailer: mailer}
}

type contactInput struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	Phone                string `json:"phone"`
	Relationship         string `json:"relationship" binding:"required"`
	NotificationsEnabled *bool  `json:"notifications_enabled"`
}

// GET /contacts
func (ct *ContactController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	contacts, err := services.ListContacts(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}

// POST /contacts
func (ct *ContactController) Add(c *gin.Context) {
	uid := c.GetUint("userID")

	var input contactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact := models.EmergencyContact{
		UserID:               uid,
		Name:                 input.Name,
		Email:                input.Email,
		Phone:                input.Phone,
		Relationship:         input.Relationship,
		NotificationsEnabled: true,
	}
	if input.NotificationsEnabled != nil {
		contact.NotificationsEnabled = *input.NotificationsEnabled
	}

	if err := services.AddContact(&contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// PUT /contacts/:id
func (ct *ContactController) Update(c *gin.Context) {
	uid := c.GetUint("userID")
	contactID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	contact, err := services.GetContact(uid, uint(contactID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}

	var input contactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact.Name = input.Name
	contact.Email = input.Email
	contact.Phone = input.Phone
	contact.Relationship = input.Relationship
	if input.NotificationsEnabled != nil {
		contact.NotificationsEnabled = *input.NotificationsEnabled
	}

	if err := services.UpdateContact(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, contact)
}

// DELETE /contacts/:id
func (ct *ContactController) Delete(c *gin.Context) {
	uid := c.GetUint("userID")
	contactID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	if err := services.DeleteContact(uid, uint(contactID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact removed"})
}

// POST /contacts/:id/test — send a test email to one contact so the user
// can verify the address works before an actual emergency.
func (ct *ContactController) Test(c *gin.Context) {
	uid := c.GetUint("userID")
	contactID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	contact, err := services.GetContact(uid, uint(contactID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}

	user, err := services.GetUserByID(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := ct.Mailer.SendTestEmail(contact.Email, user.FullName); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test alert sent", "email": contact.Email})
}
