package controllers

import (
	"net/http"
	"strings"

	"lodge-backend/middleware"
	"lodge-backend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users    *services.AdminService
	Sessions *services.SessionStore
}

func NewAuthController(users *services.AdminService, sessions *services.SessionStore) *AuthController {
	return &AuthController{Users: users, Sessions: sessions}
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/admin/login
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}

	user, err := ac.Users.Authenticate(c.Request.Context(), strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		respondError(c, "auth.login", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"role":       user.Role,
			"created_at": user.CreatedAt,
		},
		"permissions": services.PermissionsForRole(user.Role),
	})
}

// GET /api/admin/me
func (ac *AuthController) Me(c *gin.Context) {
	session, _ := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, session)
}
