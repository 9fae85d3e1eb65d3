package service

import (
	"errors"
	"log"
	"time"

	"credon/internal/domain"
	"credon/internal/models"
	"credon/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrPlanInactive = errors.New("plan is not available")

// InvestmentService owns the investment lifecycle: creation (wallet debit),
// daily ROI accrual and maturity processing. Accrual and maturity are batch
// jobs driven by the scheduler or a manual admin trigger; both are idempotent
// per calendar day.
type InvestmentService struct {
	db             *gorm.DB
	walletRepo     *repository.WalletRepository
	investmentRepo *repository.InvestmentRepository
	planRepo       *repository.PlanRepository
}

func NewInvestmentService(
	db *gorm.DB,
	walletRepo *repository.WalletRepository,
	investmentRepo *repository.InvestmentRepository,
	planRepo *repository.PlanRepository,
) *InvestmentService {
	return &InvestmentService{
		db:             db,
		walletRepo:     walletRepo,
		investmentRepo: investmentRepo,
		planRepo:       planRepo,
	}
}

// Create debits the wallet and opens an active investment in one transaction.
// The plan's name and ROI are snapshotted onto the investment so later plan
// edits never touch running accruals.
func (s *InvestmentService) Create(userID, planID uint, amount decimal.Decimal) (*models.Investment, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}
	if amount.LessThan(plan.MinInvestment) {
		return nil, domain.ErrBelowMinimum
	}

	now := time.Now().UTC()
	inv := &models.Investment{
		UserID:             userID,
		PlanID:             plan.ID,
		PlanName:           plan.Name,
		DailyROIPercentage: plan.DailyROIPercentage,
		Principal:          amount.RoundBank(domain.MoneyScale),
		DailyProfit:        dailyProfit(amount, plan.DailyROIPercentage),
		StartDate:          now,
		MaturityDate:       now.AddDate(0, plan.DurationMonths, 0),
		Status:             domain.InvestmentActive,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.walletRepo.WithTx(tx).DebitForInvestment(userID, inv.Principal); err != nil {
			return err
		}
		return s.investmentRepo.WithTx(tx).Create(inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// AccrueDaily credits one day of profit to every active investment. The
// idempotency key is (investment_id, accrual_date): running the job twice on
// the same calendar day skips everything already accrued. Individual failures
// do not abort the batch.
func (s *InvestmentService) AccrueDaily(now time.Time) *JobSummary {
	summary := &JobSummary{Job: "daily-roi"}
	investments, err := s.investmentRepo.ListActive()
	if err != nil {
		summary.fail(0, err)
		return summary
	}
	date := accrualDate(now)
	for i := range investments {
		inv := &investments[i]
		// The maturity day itself still earns; only days strictly after
		// maturity are skipped (the maturity job runs later in the cycle).
		if dayStart(now).After(dayStart(inv.MaturityDate)) {
			summary.Skipped++
			continue
		}
		done, err := s.investmentRepo.HasAccrual(inv.ID, date)
		if err != nil {
			summary.fail(inv.ID, err)
			continue
		}
		if done {
			summary.Skipped++
			continue
		}
		if err := s.accrueOne(inv, date); err != nil {
			summary.fail(inv.ID, err)
			continue
		}
		summary.Processed++
	}
	log.Printf("[Automation] %s", summary.Message())
	return summary
}

func (s *InvestmentService) accrueOne(inv *models.Investment, date string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		accrual := &models.RoiAccrual{
			InvestmentID: inv.ID,
			UserID:       inv.UserID,
			AccrualDate:  date,
			Amount:       inv.DailyProfit,
		}
		// The unique (investment_id, accrual_date) index backstops the
		// HasAccrual pre-check against concurrent runs.
		if err := s.investmentRepo.WithTx(tx).CreateAccrual(accrual); err != nil {
			return err
		}
		if err := s.investmentRepo.WithTx(tx).AddProfit(inv.ID, inv.DailyProfit); err != nil {
			return err
		}
		return s.walletRepo.WithTx(tx).CreditProfit(inv.UserID, inv.DailyProfit)
	})
}

// ProcessMaturities returns principal to the wallet for every active
// investment at or past its maturity date. Runs after AccrueDaily in the daily
// cycle so the maturity day still earns profit. The active->matured transition
// is a compare-and-set, so overlapping runs return each principal once.
func (s *InvestmentService) ProcessMaturities(now time.Time) *JobSummary {
	summary := &JobSummary{Job: "process-maturities"}
	candidates, err := s.investmentRepo.ListMaturedCandidates(now)
	if err != nil {
		summary.fail(0, err)
		return summary
	}
	for i := range candidates {
		inv := &candidates[i]
		err := s.db.Transaction(func(tx *gorm.DB) error {
			matured, err := s.investmentRepo.WithTx(tx).MarkMatured(inv.ID)
			if err != nil {
				return err
			}
			if !matured {
				return nil // another run got here first
			}
			return s.walletRepo.WithTx(tx).CreditPrincipalReturn(inv.UserID, inv.Principal)
		})
		if err != nil {
			summary.fail(inv.ID, err)
			continue
		}
		summary.Processed++
	}
	log.Printf("[Automation] %s", summary.Message())
	return summary
}

// dailyProfit computes principal * roi% with half-even rounding at the
// ledger scale.
func dailyProfit(principal, roiPercent decimal.Decimal) decimal.Decimal {
	return principal.Mul(roiPercent).Div(decimal.NewFromInt(100)).RoundBank(domain.MoneyScale)
}

func accrualDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func dayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
