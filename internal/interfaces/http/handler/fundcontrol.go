package handler

import (
	"github.com/gin-gonic/gin"

	appfundcontrol "github.com/openfms/backend/internal/application/fundcontrol"
	"github.com/openfms/backend/internal/domain/fundcontrol"
	"github.com/openfms/backend/internal/interfaces/http/dto"
)

// FundControlHandler exposes the funding authority tree and the advisory
// authority check
type FundControlHandler struct {
	BaseHandler
	service *appfundcontrol.Service
}

// NewFundControlHandler creates a new FundControlHandler
func NewFundControlHandler(service *appfundcontrol.Service) *FundControlHandler {
	return &FundControlHandler{service: service}
}

// RegisterRoutes registers fund control routes
func (h *FundControlHandler) RegisterRoutes(rg *gin.RouterGroup) {
	funds := rg.Group("/funds")
	{
		funds.PUT("/tree", h.InstallTree)
		funds.GET("/tree", h.GetTree)
		funds.POST("/check", h.CheckAuthority)
	}
}

// InstallTree replaces the funding authority tree with the posted
// hierarchy. Obligated balances reset to zero.
func (h *FundControlHandler) InstallTree(c *gin.Context) {
	var req dto.FundNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid fund tree: "+err.Error())
		return
	}

	root, err := h.service.InstallTree(c.Request.Context(), toNodeSpec(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, root)
}

// GetTree returns the current funding authority tree
func (h *FundControlHandler) GetTree(c *gin.Context) {
	root, err := h.service.GetTree(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, root)
}

// CheckAuthority runs the advisory ceiling check without recording
// anything. A failed check is a 200 with valid=false, not an error.
func (h *FundControlHandler) CheckAuthority(c *gin.Context) {
	var req dto.AuthorityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid authority check: "+err.Error())
		return
	}

	result, err := h.service.CheckAuthority(c.Request.Context(), fundcontrol.AuthorityCheck{
		FundingCode: req.FundingCode,
		Amount:      req.Amount,
		Reference:   req.Reference,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func toNodeSpec(req dto.FundNodeRequest) appfundcontrol.NodeSpec {
	spec := appfundcontrol.NodeSpec{
		Name:           req.Name,
		Code:           req.Code,
		Level:          req.Level,
		TotalAuthority: req.TotalAuthority,
	}
	for _, child := range req.Children {
		spec.Children = append(spec.Children, toNodeSpec(child))
	}
	return spec
}
