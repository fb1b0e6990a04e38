package auth

import (
	"net/http"

	"github.com/eventful-api/eventful-backend/utils"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 👤 Signup User - POST /users/signup
func (h *Handler) SignupUser(c *gin.Context) {
	var req SignupUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.BadRequest("invalid input: "+err.Error()))
		return
	}

	if err := h.Service.SignupUser(c.Request.Context(), req); err != nil {
		apiErr := utils.AsAPIError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// ===========================
// 👤 Login User - POST /users/login
func (h *Handler) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.BadRequest("invalid input: "+err.Error()))
		return
	}

	token, err := h.Service.LoginUser(c.Request.Context(), req)
	if err != nil {
		apiErr := utils.AsAPIError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	c.SetCookie("token", token, 3600*24, "/", "", false, true)
	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
}

// ===========================
// 🏢 Signup Organizer - POST /organizers/signup
func (h *Handler) SignupOrganizer(c *gin.Context) {
	var req SignupOrganizerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.BadRequest("invalid input: "+err.Error()))
		return
	}

	if err := h.Service.SignupOrganizer(c.Request.Context(), req); err != nil {
		apiErr := utils.AsAPIError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Organizer created successfully"})
}

// ===========================
// 🏢 Login Organizer - POST /organizers/login
func (h *Handler) LoginOrganizer(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.BadRequest("invalid input: "+err.Error()))
		return
	}

	token, err := h.Service.LoginOrganizer(c.Request.Context(), req)
	if err != nil {
		apiErr := utils.AsAPIError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	c.SetCookie("token", token, 3600*24, "/", "", false, true)
	c.JSON(http.StatusOK, LoginResponse{Message: "Login successful", Token: token})
}
