package handler

import (
	"net/http"

	"credon/internal/middleware"
	"credon/internal/repository"
	"credon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InvestmentHandler struct {
	investmentSvc  *service.InvestmentService
	investmentRepo *repository.InvestmentRepository
	planRepo       *repository.PlanRepository
}

func NewInvestmentHandler(
	investmentSvc *service.InvestmentService,
	investmentRepo *repository.InvestmentRepository,
	planRepo *repository.PlanRepository,
) *InvestmentHandler {
	return &InvestmentHandler{
		investmentSvc:  investmentSvc,
		investmentRepo: investmentRepo,
		planRepo:       planRepo,
	}
}

func (h *InvestmentHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load plans"})
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	var req struct {
		PlanID uint            `json:"plan_id" binding:"required"`
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}
	inv, err := h.investmentSvc.Create(middleware.GetUserID(c), req.PlanID, req.Amount)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *InvestmentHandler) MyInvestments(c *gin.Context) {
	list, err := h.investmentRepo.ListByUser(middleware.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load investments"})
		return
	}
	c.JSON(http.StatusOK, list)
}
