package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"credon/internal/domain"
	"credon/internal/models"
	"credon/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTxHashRequired  = errors.New("tx_hash required to approve a withdrawal")
	ErrWrongTxType     = errors.New("transaction has a different type")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrBelowMinAmount  = errors.New("amount below platform minimum")
	ErrAddressRequired = errors.New("wallet_address required")
)

// ApprovalService implements the deposit and withdrawal state machines:
// pending -> approved|completed|rejected, one-way, at most one terminal
// resolution per transaction (compare-and-set on status).
//
// Withdrawals debit on approval, not on request, so a rejected request never
// needs a compensating credit.
type ApprovalService struct {
	db              *gorm.DB
	userRepo        *repository.UserRepository
	walletRepo      *repository.WalletRepository
	transactionRepo *repository.TransactionRepository
	minDeposit      decimal.Decimal
	minWithdrawal   decimal.Decimal
}

func NewApprovalService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	walletRepo *repository.WalletRepository,
	transactionRepo *repository.TransactionRepository,
	minDeposit, minWithdrawal decimal.Decimal,
) *ApprovalService {
	return &ApprovalService{
		db:              db,
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		minDeposit:      minDeposit,
		minWithdrawal:   minWithdrawal,
	}
}

// SubmitDeposit records a pending deposit claim. No ledger effect until an
// admin approves it; the tx hash is free text trusted to admin review.
func (s *ApprovalService) SubmitDeposit(userID uint, amount decimal.Decimal, txHash string) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if amount.LessThan(s.minDeposit) {
		return nil, ErrBelowMinAmount
	}
	t := &models.Transaction{
		UserID:    userID,
		Type:      domain.TxTypeDeposit,
		Reference: uuid.New().String(),
		Amount:    amount.RoundBank(domain.MoneyScale),
		Status:    domain.TxStatusPending,
		TxHash:    strings.TrimSpace(txHash),
	}
	if err := s.transactionRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// RequestWithdrawal records a pending withdrawal. Only earnings are
// withdrawable: the request must fit inside profit + referral income minus
// prior (pending or completed) withdrawals, and inside the current balance.
// One request per weekly period, gated by the wallet eligibility flag.
func (s *ApprovalService) RequestWithdrawal(userID uint, amount decimal.Decimal, walletAddress string) (*models.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if amount.LessThan(s.minWithdrawal) {
		return nil, ErrBelowMinAmount
	}
	if strings.TrimSpace(walletAddress) == "" {
		return nil, ErrAddressRequired
	}
	w, err := s.walletRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if !w.WithdrawalEligible {
		return nil, domain.ErrNotEligible
	}
	withdrawn, err := s.transactionRepo.SumWithdrawn(userID)
	if err != nil {
		return nil, err
	}
	withdrawable := w.TotalProfitEarned.Add(w.TotalBonusEarned).Sub(withdrawn)
	if amount.GreaterThan(withdrawable) || amount.GreaterThan(w.Balance) {
		return nil, domain.ErrInsufficientBalance
	}

	t := &models.Transaction{
		UserID:        userID,
		Type:          domain.TxTypeWithdrawal,
		Reference:     uuid.New().String(),
		Amount:        amount.RoundBank(domain.MoneyScale),
		Status:        domain.TxStatusPending,
		WalletAddress: strings.TrimSpace(walletAddress),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.WithTx(tx).Create(t); err != nil {
			return err
		}
		return s.walletRepo.WithTx(tx).SetWithdrawalEligible(userID, false)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ApproveDeposit resolves a pending deposit and credits the wallet. The first
// approved deposit of a referred user confirms the referral for the referrer.
func (s *ApprovalService) ApproveDeposit(id uint, notes string) (*models.Transaction, error) {
	t, err := s.loadPendingType(id, domain.TxTypeDeposit)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.WithTx(tx).Resolve(id, domain.TxStatusApproved, "", notes, now); err != nil {
			return err
		}
		return s.walletRepo.WithTx(tx).Credit(t.UserID, t.Amount)
	})
	if err != nil {
		return nil, err
	}
	s.maybeConfirmReferral(t.UserID)
	return s.transactionRepo.GetByID(id)
}

// RejectDeposit resolves a pending deposit with no ledger effect.
func (s *ApprovalService) RejectDeposit(id uint, notes string) (*models.Transaction, error) {
	if _, err := s.loadPendingType(id, domain.TxTypeDeposit); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Resolve(id, domain.TxStatusRejected, "", notes, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByID(id)
}

// ApproveWithdrawal resolves a pending withdrawal and debits the wallet.
// tx_hash is the outgoing payment proof and is mandatory. If the balance no
// longer covers the amount the whole transition rolls back and the request
// stays pending.
func (s *ApprovalService) ApproveWithdrawal(id uint, txHash, notes string) (*models.Transaction, error) {
	if strings.TrimSpace(txHash) == "" {
		return nil, ErrTxHashRequired
	}
	t, err := s.loadPendingType(id, domain.TxTypeWithdrawal)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.WithTx(tx).Resolve(id, domain.TxStatusCompleted, txHash, notes, now); err != nil {
			return err
		}
		return s.walletRepo.WithTx(tx).Debit(t.UserID, t.Amount)
	})
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByID(id)
}

// RejectWithdrawal resolves a pending withdrawal. Nothing was debited at
// request time, so no compensating credit is needed; the weekly eligibility
// flag is handed back.
func (s *ApprovalService) RejectWithdrawal(id uint, notes string) (*models.Transaction, error) {
	t, err := s.loadPendingType(id, domain.TxTypeWithdrawal)
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.transactionRepo.WithTx(tx).Resolve(id, domain.TxStatusRejected, "", notes, time.Now().UTC()); err != nil {
			return err
		}
		return s.walletRepo.WithTx(tx).SetWithdrawalEligible(t.UserID, true)
	})
	if err != nil {
		return nil, err
	}
	return s.transactionRepo.GetByID(id)
}

func (s *ApprovalService) loadPendingType(id uint, txType string) (*models.Transaction, error) {
	t, err := s.transactionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if t.Type != txType {
		return nil, ErrWrongTxType
	}
	if t.Status != domain.TxStatusPending {
		return nil, domain.ErrAlreadyResolved
	}
	return t, nil
}

func (s *ApprovalService) maybeConfirmReferral(userID uint) {
	n, err := s.transactionRepo.CountResolvedDeposits(userID)
	if err != nil || n != 1 {
		return
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil || u.ReferredBy == nil {
		return
	}
	if err := s.userRepo.ConfirmReferral(*u.ReferredBy); err != nil {
		log.Printf("[Referral] confirm for referrer %d failed: %v", *u.ReferredBy, err)
	}
}
