package handler

import (
	"errors"
	"log"
	"net/http"

	"hotel_reservation/internal/model"
	"hotel_reservation/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles account, login and profile requests
type AccountHandler struct {
	service service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(s service.AccountService) *AccountHandler {
	return &AccountHandler{service: s}
}

func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req model.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	_, err := h.service.CreateAccount(c.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordNoUpperCase),
			errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error creating account: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userData, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Unknown username and wrong password must produce identical
		// responses so usernames cannot be enumerated.
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
			return
		}
		log.Printf("Error during login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"user_data": userData,
	})
}

func (h *AccountHandler) GetProfile(c *gin.Context) {
	var req model.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error updating profile: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// RegisterAccountRoutes registers account routes. Identity is passed as a
// username field in the body; there is no token scheme in this service.
func (h *AccountHandler) RegisterAccountRoutes(rg *gin.RouterGroup) {
	rg.POST("/create_account", h.CreateAccount)
	rg.POST("/login", h.Login)
	rg.POST("/get_profile", h.GetProfile)
	rg.POST("/update_profile", h.UpdateProfile)
}
