package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/hospital-api/internal/models"
)

// RegisterUser creates an account for any of the three roles.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req models.Registration
	if !bind(c, &req) {
		return
	}

	id, role, err := h.Access.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "role": role})
}

// Login checks credentials and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bind(c, &loginReq) {
		return
	}

	ident, err := h.Access.Login(c.Request.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	token, err := h.Tokens.GenerateJWT(ident.ID, string(ident.Role))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": ident})
}

// GetUserDetails returns the role projection of a profile.
func (h *Handler) GetUserDetails(c *gin.Context) {
	profile, err := h.Access.UserDetails(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
