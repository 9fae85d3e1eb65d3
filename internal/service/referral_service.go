package service

import (
	"errors"
	"fmt"
	"log"

	"credon/internal/domain"
	"credon/internal/models"
	"credon/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralService pays upline bonuses out of daily profit events. Each
// undistributed RoiAccrual row is consumed once: the three upline levels get
// 20%, 15% and 10% of the profit, credited as referral income (not profit).
type ReferralService struct {
	db              *gorm.DB
	userRepo        *repository.UserRepository
	walletRepo      *repository.WalletRepository
	investmentRepo  *repository.InvestmentRepository
	referralRepo    *repository.ReferralRepository
	transactionRepo *repository.TransactionRepository
}

func NewReferralService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
	investmentRepo *repository.InvestmentRepository,
	referralRepo *repository.ReferralRepository,
	transactionRepo *repository.TransactionRepository,
) *ReferralService {
	return &ReferralService{
		db:              db,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		investmentRepo:  investmentRepo,
		referralRepo:    referralRepo,
		transactionRepo: transactionRepo,
	}
}

// DistributePending walks every undistributed profit event through the upline
// chain. A failing event is reported and retried on the next run; successes
// are marked distributed and never paid again.
func (s *ReferralService) DistributePending() *JobSummary {
	summary := &JobSummary{Job: "referral-bonuses"}
	accruals, err := s.investmentRepo.ListUndistributed()
	if err != nil {
		summary.fail(0, err)
		return summary
	}
	for i := range accruals {
		if err := s.distribute(&accruals[i]); err != nil {
			summary.fail(accruals[i].ID, err)
			continue
		}
		summary.Processed++
	}
	log.Printf("[Automation] %s", summary.Message())
	return summary
}

// distribute pays the upline of one profit event. The walk is iterative with a
// hard depth cap: referred_by pointers are never followed past level 3, no
// matter how long the chain is. A chain that ends early just stops.
func (s *ReferralService) distribute(accrual *models.RoiAccrual) error {
	owner, err := s.userRepo.GetByID(accrual.UserID)
	if err != nil {
		return err
	}
	current := owner
	for level := 1; level <= domain.MaxReferralDepth; level++ {
		if current.ReferredBy == nil {
			break
		}
		beneficiary, err := s.userRepo.GetByID(*current.ReferredBy)
		if err != nil {
			// a deleted referrer ends the chain, same as a missing one;
			// the event is still consumed below
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return fmt.Errorf("level %d beneficiary: %w", level, err)
		}
		paid, err := s.referralRepo.HasBonus(accrual.ID, level)
		if err != nil {
			return err
		}
		if !paid {
			amount := accrual.Amount.Mul(domain.ReferralRates[level-1]).RoundBank(domain.MoneyScale)
			err = s.db.Transaction(func(tx *gorm.DB) error {
				if err := s.referralRepo.WithTx(tx).CreateBonus(&models.ReferralBonus{
					AccrualID:          accrual.ID,
					SourceInvestmentID: accrual.InvestmentID,
					SourceUserID:       accrual.UserID,
					BeneficiaryUserID:  beneficiary.ID,
					Level:              level,
					Amount:             amount,
					AccrualDate:        accrual.AccrualDate,
				}); err != nil {
					return err
				}
				if err := s.walletRepo.WithTx(tx).CreditBonus(beneficiary.ID, amount); err != nil {
					return err
				}
				return s.transactionRepo.WithTx(tx).Create(&models.Transaction{
					UserID:    beneficiary.ID,
					Type:      domain.TxTypeReferral,
					Reference: uuid.New().String(),
					Amount:    amount,
					Status:    domain.TxStatusCompleted,
					AdminNotes: fmt.Sprintf("level %d bonus from investment #%d (%s)",
						level, accrual.InvestmentID, accrual.AccrualDate),
				})
			})
			if err != nil {
				return fmt.Errorf("level %d credit: %w", level, err)
			}
		}
		current = beneficiary
	}
	return s.investmentRepo.MarkDistributed(accrual.ID)
}
