package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-tracker-api/internal/dtos"
	"github.com/justsurfingit/job-tracker-api/internal/middleware"
	"github.com/justsurfingit/job-tracker-api/internal/services"
)

type AuthHandler struct {
	UserService *services.UserService
}

func NewAuthHandler(u *services.UserService) *AuthHandler {
	return &AuthHandler{UserService: u}
}

// Register is POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, err)
		return
	}
	user, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.Log(c).WithField("user_id", user.ID).Info("user registered")
	c.JSON(http.StatusCreated, user)
}

// Login is POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
