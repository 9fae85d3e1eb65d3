package handler

import (
	"net/http"
	"strconv"
	"strings"

	"credon/internal/domain"
	"credon/internal/repository"
	"credon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// AdminUserHandler covers user administration and the dashboard stats.
type AdminUserHandler struct {
	authSvc         *service.AuthService
	userRepo        *repository.UserRepository
	walletRepo      *repository.WalletRepository
	investmentRepo  *repository.InvestmentRepository
	transactionRepo *repository.TransactionRepository
}

func NewAdminUserHandler(
	authSvc *service.AuthService,
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
	investmentRepo *repository.InvestmentRepository,
	transactionRepo *repository.TransactionRepository,
) *AdminUserHandler {
	return &AdminUserHandler{
		authSvc:         authSvc,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		investmentRepo:  investmentRepo,
		transactionRepo: transactionRepo,
	}
}

func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.userRepo.List(c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create registers a user on behalf of an admin (no referral link).
func (h *AdminUserHandler) Create(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, _, err := h.authSvc.Register(req.FullName, req.Email, req.Password, "")
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Details returns a user with wallet, investments and transactions for the
// admin drill-down dialog.
func (h *AdminUserHandler) Details(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	wallet, _ := h.walletRepo.GetOrCreate(id)
	investments, _ := h.investmentRepo.ListByUser(id)
	transactions, _ := h.transactionRepo.History(id, "")
	c.JSON(http.StatusOK, gin.H{
		"user":         u,
		"wallet":       wallet,
		"investments":  investments,
		"transactions": transactions,
	})
}

func (h *AdminUserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if u.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete admin account"})
		return
	}
	if err := h.userRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// UpdateBalance applies a manual ledger adjustment: operation "add" shifts the
// balance by amount, "set" overwrites it.
func (h *AdminUserHandler) UpdateBalance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Amount    decimal.Decimal `json:"amount" binding:"required"`
		Operation string          `json:"operation" binding:"required,oneof=add set"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.walletRepo.GetOrCreate(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "wallet error"})
		return
	}
	var err error
	if req.Operation == "set" {
		err = h.walletRepo.SetBalance(id, req.Amount)
	} else {
		err = h.walletRepo.AdjustBalance(id, req.Amount)
	}
	if err != nil {
		respondErr(c, err)
		return
	}
	w, _ := h.walletRepo.GetByUserID(id)
	c.JSON(http.StatusOK, gin.H{"message": "balance updated", "wallet": w})
}

func (h *AdminUserHandler) ResetPassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	newPassword := strings.TrimSpace(c.Query("new_password"))
	if len(newPassword) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_password must be at least 8 characters"})
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}
	u.PasswordHash = string(hash)
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset"})
}

// DashboardStats aggregates the platform numbers shown on the admin home.
func (h *AdminUserHandler) DashboardStats(c *gin.Context) {
	totalUsers, _ := h.userRepo.CountUsers()
	depositSum, depositCount, _ := h.transactionRepo.SumByTypeStatus(domain.TxTypeDeposit, domain.TxStatusApproved)
	withdrawalSum, withdrawalCount, _ := h.transactionRepo.SumByTypeStatus(domain.TxTypeWithdrawal, domain.TxStatusCompleted)
	invested, _ := h.investmentRepo.SumInvested()
	activeInvestments, _ := h.investmentRepo.CountByStatus(domain.InvestmentActive)
	c.JSON(http.StatusOK, gin.H{
		"total_users":             totalUsers,
		"total_deposits":          depositCount,
		"total_deposit_amount":    depositSum,
		"total_withdrawals":       withdrawalCount,
		"total_withdrawal_amount": withdrawalSum,
		"total_invested_amount":   invested,
		"active_investments":      activeInvestments,
	})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
