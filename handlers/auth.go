package handlers

import (
	"net/http"

	"clinichub/models"
	"clinichub/services/user"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves sign-up, sign-in and profile endpoints.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(us user.UserService) *AuthHandler {
	return &AuthHandler{Users: us}
}

// RegisterHandler handles POST /api/users/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, resp)
}

// LoginHandler handles POST /api/users/login. Every role signs in here.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, resp)
}

// LogoutHandler handles POST /api/users/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.Users.Logout(c.Request.Context(), actor(c).ID); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// MeHandler handles GET /api/users/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	usr, err := h.Users.GetUser(c.Request.Context(), actor(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, usr)
}

// UpdateMeHandler handles PUT /api/users/me.
func (h *AuthHandler) UpdateMeHandler(c *gin.Context) {
	var req models.UserUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	usr, err := h.Users.UpdateProfile(c.Request.Context(), actor(c).ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, usr)
}

// ListPatientsHandler handles GET /api/admin/patients.
func (h *AuthHandler) ListPatientsHandler(c *gin.Context) {
	patients, err := h.Users.ListPatients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, patients)
}
