package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appledger "github.com/openfms/backend/internal/application/ledger"
	"github.com/openfms/backend/internal/domain/ledger"
	"github.com/openfms/backend/internal/domain/shared"
	"github.com/openfms/backend/internal/interfaces/http/dto"
)

// LedgerHandler exposes the posted general ledger and the intake
// endpoints for feeder documents that post directly, outside the
// acquisition lifecycle.
type LedgerHandler struct {
	BaseHandler
	posting *appledger.PostingService
	intake  *appledger.IntakeService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(posting *appledger.PostingService, intake *appledger.IntakeService) *LedgerHandler {
	return &LedgerHandler{posting: posting, intake: intake}
}

// RegisterRoutes registers ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledgerGroup := rg.Group("/ledger")
	{
		ledgerGroup.GET("/transactions", h.ListTransactions)
		ledgerGroup.GET("/transactions/:id", h.GetTransaction)
		ledgerGroup.GET("/trial-balance", h.GetTrialBalance)
	}

	intake := rg.Group("/postings")
	{
		intake.POST("/project-orders", h.PostProjectOrder)
		intake.POST("/travel-orders", h.PostTravelOrder)
		intake.POST("/expenses/accruals", h.PostExpenseAccrual)
		intake.POST("/expenses/disbursements", h.PostExpenseDisbursement)
		intake.POST("/assets/capitalizations", h.PostAssetCapitalization)
		intake.POST("/assets/depreciation", h.PostQuarterlyDepreciation)
		intake.POST("/assets/disposals", h.PostAssetDisposal)
		intake.POST("/outgrants", h.PostOutgrantRevenue)
		intake.POST("/relocations", h.PostRelocationExpense)
		intake.POST("/cost-transfers", h.PostCostTransfer)
	}
}

// ListTransactions returns posted transactions matching the filter
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	var req dto.TransactionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid filter: "+err.Error())
		return
	}

	filter := ledger.ListFilter{
		Type:         ledger.TransactionType(req.Type),
		SourceModule: req.SourceModule,
		ReferenceID:  req.ReferenceID,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}
	txs, total, err := h.posting.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, txs, total, pageOrDefault(req.Page), sizeOrDefault(req.PageSize))
}

// GetTransaction returns a posted transaction by id
func (h *LedgerHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction id")
		return
	}

	tx, err := h.posting.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}

// GetTrialBalance returns per-account debit and credit totals
func (h *LedgerHandler) GetTrialBalance(c *gin.Context) {
	tb, err := h.posting.GetTrialBalance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tb)
}

// PostProjectOrder obligates funds for a reimbursable project order
func (h *LedgerHandler) PostProjectOrder(c *gin.Context) {
	var req dto.ProjectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid project order: "+err.Error())
		return
	}

	result, err := h.intake.RecordProjectOrderObligation(c.Request.Context(), ledger.ProjectOrder{
		OrderNumber: req.OrderNumber,
		Description: req.Description,
		Amount:      req.Amount,
		FundingCode: req.FundingCode,
		CostCenter:  req.CostCenter,
	}, shared.Role(req.RequestedBy), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostTravelOrder obligates the estimated cost of a travel order
func (h *LedgerHandler) PostTravelOrder(c *gin.Context) {
	var req dto.TravelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid travel order: "+err.Error())
		return
	}

	result, err := h.intake.RecordTravelObligation(c.Request.Context(), ledger.TravelOrder{
		OrderNumber:   req.OrderNumber,
		Traveler:      req.Traveler,
		Purpose:       req.Purpose,
		EstimatedCost: req.EstimatedCost,
		FundingCode:   req.FundingCode,
		CostCenter:    req.CostCenter,
	}, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostExpenseAccrual records an incurred, unpaid expense
func (h *LedgerHandler) PostExpenseAccrual(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid expense: "+err.Error())
		return
	}

	result, err := h.intake.RecordExpenseAccrual(c.Request.Context(), toExpense(req), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostExpenseDisbursement records the payment of an accrued expense
func (h *LedgerHandler) PostExpenseDisbursement(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid expense: "+err.Error())
		return
	}

	result, err := h.intake.RecordExpenseDisbursement(c.Request.Context(), toExpense(req), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostAssetCapitalization moves an acquisition from expense to the
// equipment account
func (h *LedgerHandler) PostAssetCapitalization(c *gin.Context) {
	var req dto.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid asset: "+err.Error())
		return
	}

	result, err := h.intake.RecordAssetCapitalization(c.Request.Context(), toAsset(req), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostQuarterlyDepreciation posts one quarter of straight-line
// depreciation for an asset
func (h *LedgerHandler) PostQuarterlyDepreciation(c *gin.Context) {
	var req dto.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid asset: "+err.Error())
		return
	}

	result, err := h.intake.RecordQuarterlyDepreciation(c.Request.Context(), toAsset(req), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostAssetDisposal writes off the remaining book value of an asset
func (h *LedgerHandler) PostAssetDisposal(c *gin.Context) {
	var req dto.AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid asset: "+err.Error())
		return
	}

	result, err := h.intake.RecordAssetDisposal(c.Request.Context(), toAsset(req), getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostOutgrantRevenue records revenue earned from an outgrant agreement
func (h *LedgerHandler) PostOutgrantRevenue(c *gin.Context) {
	var req dto.OutgrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid outgrant: "+err.Error())
		return
	}

	result, err := h.intake.RecordOutgrantRevenue(c.Request.Context(), ledger.Outgrant{
		AgreementNumber: req.AgreementNumber,
		Grantee:         req.Grantee,
		Description:     req.Description,
		Amount:          req.Amount,
		FundingCode:     req.FundingCode,
		CostCenter:      req.CostCenter,
	}, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostRelocationExpense records an employee relocation benefit expense
func (h *LedgerHandler) PostRelocationExpense(c *gin.Context) {
	var req dto.RelocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid relocation benefit: "+err.Error())
		return
	}

	result, err := h.intake.RecordRelocationExpense(c.Request.Context(), ledger.RelocationBenefit{
		CaseNumber:  req.CaseNumber,
		Claimant:    req.Claimant,
		Description: req.Description,
		Amount:      req.Amount,
		FundingCode: req.FundingCode,
		CostCenter:  req.CostCenter,
	}, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// PostCostTransfer moves recorded cost between cost centers
func (h *LedgerHandler) PostCostTransfer(c *gin.Context) {
	var req dto.CostTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid cost transfer: "+err.Error())
		return
	}

	result, err := h.intake.RecordCostTransfer(c.Request.Context(), ledger.CostTransfer{
		TransferNumber: req.TransferNumber,
		Description:    req.Description,
		Amount:         req.Amount,
		FundingCode:    req.FundingCode,
		FromCostCenter: req.FromCostCenter,
		ToCostCenter:   req.ToCostCenter,
	}, getActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

func toExpense(req dto.ExpenseRequest) ledger.Expense {
	return ledger.Expense{
		ExpenseNumber: req.ExpenseNumber,
		Description:   req.Description,
		Amount:        req.Amount,
		FundingCode:   req.FundingCode,
		CostCenter:    req.CostCenter,
		Paid:          req.Paid,
	}
}

func toAsset(req dto.AssetRequest) ledger.Asset {
	return ledger.Asset{
		AssetNumber:             req.AssetNumber,
		Description:             req.Description,
		AcquisitionCost:         req.AcquisitionCost,
		UsefulLifeYears:         req.UsefulLifeYears,
		AccumulatedDepreciation: req.AccumulatedDepreciation,
		FundingCode:             req.FundingCode,
		CostCenter:              req.CostCenter,
	}
}
