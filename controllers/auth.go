// controllers/auth.go
package controllers

import (
	"net/http"
	"strings"

	"category-services-backend/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthController struct {
	Gate  *utils.CredentialGate
	Admin utils.AdminAuthenticator
}

func NewAuthController(gate *utils.CredentialGate, admin utils.AdminAuthenticator) *AuthController {
	return &AuthController{Gate: gate, Admin: admin}
}

// Login checks the configured admin credentials and issues a bearer token.
func (ctl *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	email := input.Email
	if strings.TrimSpace(email) == "" || input.Password == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	if err := ctl.Admin.Authenticate(email, input.Password); err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := ctl.Gate.Issue(email)
	if err != nil {
		log.WithError(err).Error("failed to issue token")
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"email": email,
		},
	})
}
