package controllers

import (
	"log"
	"net/http"

	"lodge-backend/middleware"
	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Users    *services.AdminService
	Sessions *services.SessionStore
}

func NewUserController(users *services.AdminService, sessions *services.SessionStore) *UserController {
	return &UserController{Users: users, Sessions: sessions}
}

// GET /api/admin/users
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, "admin.users.list", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /api/admin/users
func (uc *UserController) Create(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	user, err := uc.Users.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, "admin.users.create", err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// PUT /api/admin/users/:id
func (uc *UserController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.UserUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	user, err := uc.Users.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, "admin.users.update", err)
		return
	}
	uc.revoke(c, id)
	c.JSON(http.StatusOK, user)
}

// DELETE /api/admin/users/:id
func (uc *UserController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	session, _ := middleware.CurrentSession(c)
	if err := uc.Users.Delete(c.Request.Context(), id, session.AdminID); err != nil {
		respondError(c, "admin.users.delete", err)
		return
	}
	uc.revoke(c, id)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "User deleted"})
}

func (uc *UserController) revoke(c *gin.Context, id uint) {
	if err := uc.Sessions.Revoke(c.Request.Context(), id); err != nil {
		log.Printf("admin.users: failed to revoke sessions of %d: %v", id, err)
	}
}
