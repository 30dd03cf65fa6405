package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appacquisition "github.com/openfms/backend/internal/application/acquisition"
	"github.com/openfms/backend/internal/domain/acquisition"
	"github.com/openfms/backend/internal/interfaces/http/dto"
)

// AcquisitionHandler exposes the purchase request, solicitation, and
// contract lifecycle
type AcquisitionHandler struct {
	BaseHandler
	service *appacquisition.Service
}

// NewAcquisitionHandler creates a new AcquisitionHandler
func NewAcquisitionHandler(service *appacquisition.Service) *AcquisitionHandler {
	return &AcquisitionHandler{service: service}
}

// RegisterRoutes registers acquisition routes
func (h *AcquisitionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prs := rg.Group("/purchase-requests")
	{
		prs.POST("", h.CreatePurchaseRequest)
		prs.GET("", h.ListPurchaseRequests)
		prs.GET("/:id", h.GetPurchaseRequest)
		prs.POST("/:id/certify", h.CertifyPurchaseRequest)
	}

	sols := rg.Group("/solicitations")
	{
		sols.POST("", h.CreateSolicitation)
		sols.GET("", h.ListSolicitations)
		sols.GET("/:id", h.GetSolicitation)
		sols.POST("/:id/advance", h.AdvanceSolicitation)
		sols.POST("/:id/quotes", h.AddQuote)
	}

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.AwardContract)
		contracts.GET("", h.ListContracts)
		contracts.GET("/:id", h.GetContract)
		contracts.POST("/:id/modifications", h.ExecuteModification)
		contracts.POST("/:id/closeout", h.CloseoutContract)
	}
}

// CreatePurchaseRequest creates a purchase request and submits it for
// funds certification
func (h *AcquisitionHandler) CreatePurchaseRequest(c *gin.Context) {
	var req dto.CreatePurchaseRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid purchase request: "+err.Error())
		return
	}

	pr, err := h.service.CreatePurchaseRequest(c.Request.Context(), appacquisition.CreatePurchaseRequestRequest{
		RequestNumber: req.RequestNumber,
		Description:   req.Description,
		Requestor:     req.Requestor,
		Amount:        req.Amount,
		FundingCode:   req.FundingCode,
		CostCenter:    req.CostCenter,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pr)
}

// ListPurchaseRequests returns purchase requests, optionally by status
func (h *AcquisitionHandler) ListPurchaseRequests(c *gin.Context) {
	var req dto.PurchaseRequestListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	prs, total, err := h.service.ListPurchaseRequests(c.Request.Context(),
		acquisition.PurchaseRequestStatus(req.Status), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, prs, total, pageOrDefault(req.Page), sizeOrDefault(req.PageSize))
}

// GetPurchaseRequest returns a purchase request by id
func (h *AcquisitionHandler) GetPurchaseRequest(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	pr, err := h.service.GetPurchaseRequest(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pr)
}

// CertifyPurchaseRequest runs the authority check and, if funds are
// available, posts the commitment. A failed check is a 200 with
// success=false.
func (h *AcquisitionHandler) CertifyPurchaseRequest(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	result, err := h.service.CertifyPurchaseRequest(c.Request.Context(), id, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateSolicitation opens a solicitation against a certified purchase
// request
func (h *AcquisitionHandler) CreateSolicitation(c *gin.Context) {
	var req dto.CreateSolicitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid solicitation: "+err.Error())
		return
	}
	prID, err := uuid.Parse(req.PurchaseRequestID)
	if err != nil {
		h.BadRequest(c, "Invalid purchase request id")
		return
	}

	sol, err := h.service.CreateSolicitation(c.Request.Context(), appacquisition.CreateSolicitationRequest{
		SolicitationNumber: req.SolicitationNumber,
		Title:              req.Title,
		PurchaseRequestID:  prID,
		CreatedBy:          getActor(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sol)
}

// ListSolicitations returns solicitations
func (h *AcquisitionHandler) ListSolicitations(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	sols, total, err := h.service.ListSolicitations(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, sols, total, pageOrDefault(req.Page), sizeOrDefault(req.PageSize))
}

// GetSolicitation returns a solicitation by id
func (h *AcquisitionHandler) GetSolicitation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	sol, err := h.service.GetSolicitation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sol)
}

// AdvanceSolicitation moves a solicitation one phase forward
func (h *AcquisitionHandler) AdvanceSolicitation(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dto.AdvanceSolicitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid advance request: "+err.Error())
		return
	}

	sol, err := h.service.AdvanceSolicitation(c.Request.Context(), id,
		acquisition.SolicitationStatus(req.Target), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sol)
}

// AddQuote records a vendor quote on an open solicitation
func (h *AcquisitionHandler) AddQuote(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dto.AddQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quote: "+err.Error())
		return
	}

	quote := acquisition.NewVendorQuote(req.VendorName, req.Amount, req.Notes)
	sol, err := h.service.AddQuote(c.Request.Context(), id, quote, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sol)
}

// AwardContract awards a contract from a certified purchase request
func (h *AcquisitionHandler) AwardContract(c *gin.Context) {
	var req dto.AwardContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid award: "+err.Error())
		return
	}
	prID, err := uuid.Parse(req.PurchaseRequestID)
	if err != nil {
		h.BadRequest(c, "Invalid purchase request id")
		return
	}
	solID := uuid.Nil
	if req.SolicitationID != "" {
		solID, err = uuid.Parse(req.SolicitationID)
		if err != nil {
			h.BadRequest(c, "Invalid solicitation id")
			return
		}
	}

	result, err := h.service.AwardContract(c.Request.Context(), appacquisition.AwardContractRequest{
		PurchaseRequestID: prID,
		SolicitationID:    solID,
		ContractNumber:    req.ContractNumber,
		VendorName:        req.VendorName,
		Amount:            req.Amount,
		AwardedBy:         getActor(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListContracts returns contracts, optionally by status
func (h *AcquisitionHandler) ListContracts(c *gin.Context) {
	var req dto.ContractListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	contracts, total, err := h.service.ListContracts(c.Request.Context(),
		acquisition.ContractStatus(req.Status), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, contracts, total, pageOrDefault(req.Page), sizeOrDefault(req.PageSize))
}

// GetContract returns a contract by id
func (h *AcquisitionHandler) GetContract(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	contract, err := h.service.GetContract(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

// ExecuteModification appends a modification to an active contract
func (h *AcquisitionHandler) ExecuteModification(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dto.ExecuteModificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid modification: "+err.Error())
		return
	}

	result, err := h.service.ExecuteModification(c.Request.Context(), id,
		req.Description, req.AmountDelta, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// CloseoutContract closes an active contract
func (h *AcquisitionHandler) CloseoutContract(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	contract, err := h.service.CloseoutContract(c.Request.Context(), id, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contract)
}

func (h *AcquisitionHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func sizeOrDefault(size int) int {
	if size < 1 || size > 200 {
		return 50
	}
	return size
}
