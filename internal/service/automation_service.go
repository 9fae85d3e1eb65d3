package service

import (
	"log"
	"time"

	"credon/internal/domain"
	"credon/internal/repository"
)

// AutomationService unifies scheduled and manual job triggering behind one set
// of idempotent job functions. The scheduler consults Enabled() before each
// run; manual admin triggers skip that check but hit the same per-period
// idempotency keys, so a manual run right after a scheduled one is a no-op.
type AutomationService struct {
	settingRepo   *repository.SettingRepository
	walletRepo    *repository.WalletRepository
	investmentSvc *InvestmentService
	referralSvc   *ReferralService
}

func NewAutomationService(
	settingRepo *repository.SettingRepository,
	walletRepo *repository.WalletRepository,
	investmentSvc *InvestmentService,
	referralSvc *ReferralService,
) *AutomationService {
	return &AutomationService{
		settingRepo:   settingRepo,
		walletRepo:    walletRepo,
		investmentSvc: investmentSvc,
		referralSvc:   referralSvc,
	}
}

// Enabled reads the persisted toggle. Missing setting defaults to on.
func (s *AutomationService) Enabled() bool {
	v, err := s.settingRepo.Get(domain.SettingAutomationEnabled)
	if err != nil {
		return true
	}
	return v != "false"
}

// Toggle flips the persisted automation flag and returns the new state.
// The flip happens in the database so two concurrent toggles land as two
// state changes, not one.
func (s *AutomationService) Toggle(updatedBy string) (bool, error) {
	v, err := s.settingRepo.ToggleFlag(domain.SettingAutomationEnabled, updatedBy)
	if err != nil {
		return false, err
	}
	log.Printf("[Automation] toggled %s by %s", v, updatedBy)
	return v != "false", nil
}

func (s *AutomationService) RunDailyROI(now time.Time) *JobSummary {
	return s.investmentSvc.AccrueDaily(now)
}

func (s *AutomationService) RunReferralBonuses() *JobSummary {
	return s.referralSvc.DistributePending()
}

func (s *AutomationService) RunMaturities(now time.Time) *JobSummary {
	return s.investmentSvc.ProcessMaturities(now)
}

// RunEligibilityReset re-opens the weekly withdrawal window for all wallets.
func (s *AutomationService) RunEligibilityReset() *JobSummary {
	summary := &JobSummary{Job: "reset-withdrawal-eligibility"}
	n, err := s.walletRepo.ResetAllWithdrawalEligibility()
	if err != nil {
		summary.fail(0, err)
		return summary
	}
	summary.Processed = int(n)
	log.Printf("[Automation] %s", summary.Message())
	return summary
}

// RunDailyCycle executes the fixed ordering contract:
// accrue -> distribute referral bonuses -> process maturities.
// Ordering matters: accrual before distribution (bonuses feed on today's
// profit events) and before maturities (the maturity day still earns).
func (s *AutomationService) RunDailyCycle(now time.Time) []*JobSummary {
	return []*JobSummary{
		s.RunDailyROI(now),
		s.RunReferralBonuses(),
		s.RunMaturities(now),
	}
}
