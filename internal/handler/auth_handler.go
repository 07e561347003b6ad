package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bitforge/plm/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	resp, err := h.svc.Login(req)
	if err != nil {
		Unauthorized(c, "invalid credentials")
		return
	}
	Success(c, resp)
}
