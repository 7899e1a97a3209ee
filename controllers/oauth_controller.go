package controllers

import (
	"net/http"

	"github.com/Siddhant-kochhar/goatfit/services"
	"github.com/Siddhant-kochhar/goatfit/utils"

	"github.com/gin-gonic/gin"
)

// OAuthController handles the Google Fit account linking flow. The state
// parameter is the caller's own JWT so the callback, which Google hits
// without an Authorization header, can still identify the user.
type OAuthController struct {
	Fit *services.GoogleFitService
}

func NewOAuthController(fit *services.GoogleFitService) *OAuthController {
	return &OAuthController{Fit: fit}
}

// GET /auth/google
func (o *OAuthController) AuthorizeURL(c *gin.Context) {
	email := c.GetString("email")
	state, err := utils.GenerateJWT(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build state token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authorize_url": o.Fit.AuthURL(state)})
}

// GET /auth/google/callback
func (o *OAuthController) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and state are required"})
		return
	}

	email, err := utils.ParseEmailFromJWT(state)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid state token"})
		return
	}
	user, err := services.FindUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	tokenJSON, err := o.Fit.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if err := services.LinkGoogleAccount(user.ID, tokenJSON); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Google Fit account linked"})
}
