package handler

import (
	"net/http"

	"credon/internal/domain"
	"credon/internal/repository"
	"credon/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminFinanceHandler resolves pending deposits and withdrawals and lists all
// investments. Resolution endpoints surface AlreadyResolved as 409 so a
// double-click or a racing second admin gets a clean signal.
type AdminFinanceHandler struct {
	approvalSvc     *service.ApprovalService
	transactionRepo *repository.TransactionRepository
	investmentRepo  *repository.InvestmentRepository
}

func NewAdminFinanceHandler(
	approvalSvc *service.ApprovalService,
	transactionRepo *repository.TransactionRepository,
	investmentRepo *repository.InvestmentRepository,
) *AdminFinanceHandler {
	return &AdminFinanceHandler{
		approvalSvc:     approvalSvc,
		transactionRepo: transactionRepo,
		investmentRepo:  investmentRepo,
	}
}

func (h *AdminFinanceHandler) PendingDeposits(c *gin.Context) {
	list, err := h.transactionRepo.ListPending(domain.TxTypeDeposit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load deposits"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminFinanceHandler) ApproveDeposit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		AdminNotes string `json:"admin_notes"`
	}
	_ = c.ShouldBindJSON(&req)
	t, err := h.approvalSvc.ApproveDeposit(id, req.AdminNotes)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deposit approved", "transaction": t})
}

func (h *AdminFinanceHandler) RejectDeposit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		AdminNotes string `json:"admin_notes"`
	}
	_ = c.ShouldBindJSON(&req)
	t, err := h.approvalSvc.RejectDeposit(id, req.AdminNotes)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deposit rejected", "transaction": t})
}

func (h *AdminFinanceHandler) PendingWithdrawals(c *gin.Context) {
	list, err := h.transactionRepo.ListPending(domain.TxTypeWithdrawal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *AdminFinanceHandler) ApproveWithdrawal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		TxHash     string `json:"tx_hash" binding:"required"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tx_hash is required to approve a withdrawal"})
		return
	}
	t, err := h.approvalSvc.ApproveWithdrawal(id, req.TxHash, req.AdminNotes)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "withdrawal completed", "transaction": t})
}

func (h *AdminFinanceHandler) RejectWithdrawal(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		AdminNotes string `json:"admin_notes"`
	}
	_ = c.ShouldBindJSON(&req)
	t, err := h.approvalSvc.RejectWithdrawal(id, req.AdminNotes)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "withdrawal rejected", "transaction": t})
}

func (h *AdminFinanceHandler) ListInvestments(c *gin.Context) {
	list, err := h.investmentRepo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load investments"})
		return
	}
	c.JSON(http.StatusOK, list)
}
