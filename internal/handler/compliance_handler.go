package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/service"
)

type ComplianceHandler struct {
	svc *service.ComplianceService
}

func NewComplianceHandler(svc *service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{svc: svc}
}

func (h *ComplianceHandler) CreateRegulation(c *gin.Context) {
	var req service.CreateRegulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	reg, err := h.svc.CreateRegulation(req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, reg)
}

func (h *ComplianceHandler) ListRegulations(c *gin.Context) {
	regs, err := h.svc.ListRegulations()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, regs)
}

func (h *ComplianceHandler) Declare(c *gin.Context) {
	var req service.DeclareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	decl, err := h.svc.Declare(c.Param("id"), req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, decl)
}

func (h *ComplianceHandler) UpdateDeclaration(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	decl, err := h.svc.UpdateDeclaration(c.Param("id"), req.Status, req.Notes, GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "declaration not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, decl)
}

func (h *ComplianceHandler) DeclarationsForPart(c *gin.Context) {
	decls, err := h.svc.DeclarationsForPart(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, decls)
}

func (h *ComplianceHandler) PartSummary(c *gin.Context) {
	summary, err := h.svc.PartSummary(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, summary)
}

func (h *ComplianceHandler) Expiring(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("within_days", "90"))
	decls, err := h.svc.ExpiringDeclarations(days)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, decls)
}
