package handler

import (
	"net/http"

	"credon/internal/domain"
	"credon/internal/middleware"
	"credon/internal/repository"
	"credon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionHandler covers the user-facing money endpoints: deposit claims,
// withdrawal requests and transaction history.
type TransactionHandler struct {
	approvalSvc     *service.ApprovalService
	transactionRepo *repository.TransactionRepository
	settingRepo     *repository.SettingRepository
}

func NewTransactionHandler(
	approvalSvc *service.ApprovalService,
	transactionRepo *repository.TransactionRepository,
	settingRepo *repository.SettingRepository,
) *TransactionHandler {
	return &TransactionHandler{
		approvalSvc:     approvalSvc,
		transactionRepo: transactionRepo,
		settingRepo:     settingRepo,
	}
}

func (h *TransactionHandler) SubmitDeposit(c *gin.Context) {
	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
		TxHash string          `json:"tx_hash" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.approvalSvc.SubmitDeposit(middleware.GetUserID(c), req.Amount, req.TxHash)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TransactionHandler) RequestWithdrawal(c *gin.Context) {
	var req struct {
		Amount        decimal.Decimal `json:"amount" binding:"required"`
		WalletAddress string          `json:"wallet_address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.approvalSvc.RequestWithdrawal(middleware.GetUserID(c), req.Amount, req.WalletAddress)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// History returns the caller's transactions, optionally filtered with ?type=.
func (h *TransactionHandler) History(c *gin.Context) {
	list, err := h.transactionRepo.History(middleware.GetUserID(c), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// DepositAddress exposes the platform's BEP-20 deposit address to users.
func (h *TransactionHandler) DepositAddress(c *gin.Context) {
	addr, err := h.settingRepo.Get(domain.SettingDepositAddress)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "deposit address not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposit_address": addr})
}
