package handler

import (
	"net/http"
	"time"

	"credon/internal/middleware"
	"credon/internal/service"

	"github.com/gin-gonic/gin"
)

// AutomationHandler exposes manual triggers for the scheduled jobs plus the
// on/off toggle. Manual runs share the jobs' per-period idempotency, so
// triggering twice in one day credits nothing extra.
type AutomationHandler struct {
	automationSvc *service.AutomationService
}

func NewAutomationHandler(automationSvc *service.AutomationService) *AutomationHandler {
	return &AutomationHandler{automationSvc: automationSvc}
}

func (h *AutomationHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"automation_enabled": h.automationSvc.Enabled()})
}

func (h *AutomationHandler) Toggle(c *gin.Context) {
	enabled, err := h.automationSvc.Toggle(middleware.GetEmail(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update automation setting"})
		return
	}
	msg := "automation disabled; scheduled jobs paused"
	if enabled {
		msg = "automation enabled; scheduled jobs resumed"
	}
	c.JSON(http.StatusOK, gin.H{"automation_enabled": enabled, "message": msg})
}

func (h *AutomationHandler) RunDailyROI(c *gin.Context) {
	summary := h.automationSvc.RunDailyROI(time.Now())
	c.JSON(http.StatusOK, gin.H{"message": summary.Message(), "summary": summary})
}

func (h *AutomationHandler) RunReferralBonuses(c *gin.Context) {
	summary := h.automationSvc.RunReferralBonuses()
	c.JSON(http.StatusOK, gin.H{"message": summary.Message(), "summary": summary})
}

func (h *AutomationHandler) ProcessMaturities(c *gin.Context) {
	summary := h.automationSvc.RunMaturities(time.Now())
	c.JSON(http.StatusOK, gin.H{"message": summary.Message(), "summary": summary})
}

func (h *AutomationHandler) ResetWithdrawalEligibility(c *gin.Context) {
	summary := h.automationSvc.RunEligibilityReset()
	c.JSON(http.StatusOK, gin.H{"message": summary.Message(), "summary": summary})
}
