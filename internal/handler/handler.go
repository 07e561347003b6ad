package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bitforge/plm/internal/config"
	"github.com/bitforge/plm/internal/service"
)

// Handlers is the collection of HTTP handlers.
type Handlers struct {
	Auth        *AuthHandler
	Part        *PartHandler
	BOM         *BOMHandler
	Project     *ProjectHandler
	Requirement *RequirementHandler
	Supplier    *SupplierHandler
	Compliance  *ComplianceHandler
	Costing     *CostingHandler
	Bulletin    *BulletinHandler
	Inventory   *InventoryHandler
	Document    *DocumentHandler
	MRP         *MRPHandler
}

func NewHandlers(svc *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(svc.Auth),
		Part:        NewPartHandler(svc.Part),
		BOM:         NewBOMHandler(svc.BOM),
		Project:     NewProjectHandler(svc.Project),
		Requirement: NewRequirementHandler(svc.Requirement),
		Supplier:    NewSupplierHandler(svc.Supplier),
		Compliance:  NewComplianceHandler(svc.Compliance),
		Costing:     NewCostingHandler(svc.Costing),
		Bulletin:    NewBulletinHandler(svc.Bulletin),
		Inventory:   NewInventoryHandler(svc.Inventory),
		Document:    NewDocumentHandler(svc.Document),
		MRP:         NewMRPHandler(svc.MRP),
	}
}

// Response is the common envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes a business error code whose leading digits are the HTTP
// status.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID pulls the authenticated user from the context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination reads page/size query params with bounds.
func GetPagination(c *gin.Context) (page, size int) {
	page = 1
	size = 20
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if s := c.Query("size"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 100 {
			size = v
		}
	}
	return page, size
}

// ListData is the common list payload shape.
func ListData(items interface{}, total int64, page, size int) gin.H {
	return gin.H{"items": items, "total": total, "page": page, "size": size}
}
