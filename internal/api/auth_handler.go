package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"starstream/internal/identity"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	identity *identity.Context
}

func NewAuthHandler(ids *identity.Context) *AuthHandler {
	return &AuthHandler{identity: ids}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
	rg.POST("/register", h.Register)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", h.Me)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	res, err := h.identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, authStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	res, err := h.identity.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		fail(c, authStatus(err), err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	redirect, err := h.identity.Logout(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": redirect})
}

func (h *AuthHandler) Me(c *gin.Context) {
	who := whoFrom(c)
	if who == nil {
		fail(c, http.StatusUnauthorized, errors.New("not signed in"))
		return
	}
	c.JSON(http.StatusOK, who)
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, identity.ErrEmailAlreadyUsed):
		return http.StatusConflict
	case errors.Is(err, identity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
