package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	project, err := h.svc.Create(req, GetUserID(c))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, project)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "project not found")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, project)
}

func (h *ProjectHandler) List(c *gin.Context) {
	page, size := GetPagination(c)
	params := repository.ProjectListParams{
		Status: c.Query("status"),
		Phase:  c.Query("phase"),
		Page:   page,
		Size:   size,
	}
	projects, total, err := h.svc.List(params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, ListData(projects, total, page, size))
}

func (h *ProjectHandler) Transition(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	project, err := h.svc.Transition(c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "project not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Success(c, project)
}

func (h *ProjectHandler) SetPhase(c *gin.Context) {
	var req struct {
		Phase string `json:"phase" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	project, err := h.svc.SetPhase(c.Param("id"), req.Phase)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, project)
}

func (h *ProjectHandler) SetTopPart(c *gin.Context) {
	var req struct {
		PartID string `json:"part_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	project, err := h.svc.SetTopPart(c.Param("id"), req.PartID)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, project)
}

func (h *ProjectHandler) AddMilestone(c *gin.Context) {
	var req service.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.AddMilestone(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "project not found")
			return
		}
		BadRequest(c, err.Error())
		return
	}
	Created(c, m)
}

func (h *ProjectHandler) UpdateMilestone(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	m, err := h.svc.UpdateMilestoneStatus(c.Param("milestone_id"), req.Status)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, m)
}

func (h *ProjectHandler) Progress(c *gin.Context) {
	progress, err := h.svc.Progress(c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, progress)
}
