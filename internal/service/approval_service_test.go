package service

import (
	"testing"

	"credon/internal/domain"
	"credon/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitDeposit(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	u := createUser(t, db, "0", nil)

	_, err := svc.SubmitDeposit(u.ID, dec("49.99"), "0xabc")
	assert.ErrorIs(t, err, ErrBelowMinAmount)

	_, err = svc.SubmitDeposit(u.ID, dec("-5"), "0xabc")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	tx, err := svc.SubmitDeposit(u.ID, dec("100"), "0xabc")
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusPending, tx.Status)
	assert.NotEmpty(t, tx.Reference)

	// nothing lands in the wallet until approval
	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.IsZero())
}

func TestApproveDeposit(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	u := createUser(t, db, "0", nil)
	tx, err := svc.SubmitDeposit(u.ID, dec("100"), "0xabc")
	require.NoError(t, err)

	resolved, err := svc.ApproveDeposit(tx.ID, "checked on chain")
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusApproved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)

	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("100")), "got %s", w.Balance)
}

func TestResolveDepositTwice(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	u := createUser(t, db, "0", nil)
	tx, err := svc.SubmitDeposit(u.ID, dec("100"), "0xabc")
	require.NoError(t, err)

	_, err = svc.ApproveDeposit(tx.ID, "")
	require.NoError(t, err)

	_, err = svc.ApproveDeposit(tx.ID, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	_, err = svc.RejectDeposit(tx.ID, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyResolved)

	// the double resolution must not credit twice
	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("100")), "got %s", w.Balance)
}

func TestRejectDeposit(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	u := createUser(t, db, "0", nil)
	tx, err := svc.SubmitDeposit(u.ID, dec("100"), "0xabc")
	require.NoError(t, err)

	resolved, err := svc.RejectDeposit(tx.ID, "hash not found")
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusRejected, resolved.Status)
	assert.Equal(t, "hash not found", resolved.AdminNotes)

	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.IsZero())
}

func TestFirstApprovedDepositConfirmsReferral(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	referrer := createUser(t, db, "0", nil)
	referred := createUser(t, db, "0", &referrer.ID)

	tx1, err := svc.SubmitDeposit(referred.ID, dec("100"), "0x1")
	require.NoError(t, err)
	_, err = svc.ApproveDeposit(tx1.ID, "")
	require.NoError(t, err)

	var r models.User
	require.NoError(t, db.First(&r, referrer.ID).Error)
	assert.Equal(t, 1, r.ConfirmedReferrals)
	assert.Equal(t, domain.LevelStarter, r.Level)

	// only the first approved deposit counts
	tx2, err := svc.SubmitDeposit(referred.ID, dec("100"), "0x2")
	require.NoError(t, err)
	_, err = svc.ApproveDeposit(tx2.ID, "")
	require.NoError(t, err)

	require.NoError(t, db.First(&r, referrer.ID).Error)
	assert.Equal(t, 1, r.ConfirmedReferrals)
}

func TestRequestWithdrawalEligibilityAndCeiling(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	u := createUser(t, db, "500", nil)
	setWallet(t, db, u.ID, map[string]interface{}{"total_profit_earned": "80", "total_bonus_earned": "20"})

	_, err := svc.RequestWithdrawal(u.ID, dec("5"), "0xdest")
	assert.ErrorIs(t, err, ErrBelowMinAmount)
	_, err = svc.RequestWithdrawal(u.ID, dec("50"), "")
	assert.ErrorIs(t, err, ErrAddressRequired)

	// principal is not withdrawable: earnings cap the request at 100
	_, err = svc.RequestWithdrawal(u.ID, dec("150"), "0xdest")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	tx, err := svc.RequestWithdrawal(u.ID, dec("60"), "0xdest")
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusPending, tx.Status)

	// the weekly window closes with the request
	w := getWallet(t, db, u.ID)
	assert.False(t, w.WithdrawalEligible)
	_, err = svc.RequestWithdrawal(u.ID, dec("20"), "0xdest")
	assert.ErrorIs(t, err, domain.ErrNotEligible)

	// even re-opened, the pending 60 counts against the 100 ceiling
	setWallet(t, db, u.ID, map[string]interface{}{"withdrawal_eligible": true})
	_, err = svc.RequestWithdrawal(u.ID, dec("50"), "0xdest")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	_, err = svc.RequestWithdrawal(u.ID, dec("40"), "0xdest")
	require.NoError(t, err)
}

func TestApproveWithdrawal(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	u := createUser(t, db, "500", nil)
	setWallet(t, db, u.ID, map[string]interface{}{"total_profit_earned": "100"})

	tx, err := svc.RequestWithdrawal(u.ID, dec("60"), "0xdest")
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(tx.ID, "", "")
	assert.ErrorIs(t, err, ErrTxHashRequired)

	resolved, err := svc.ApproveWithdrawal(tx.ID, "0xpayout", "sent")
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusCompleted, resolved.Status)
	assert.Equal(t, "0xpayout", resolved.TxHash)

	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("440")), "got %s", w.Balance)
}

func TestRejectWithdrawalRestoresEligibility(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	u := createUser(t, db, "500", nil)
	setWallet(t, db, u.ID, map[string]interface{}{"total_profit_earned": "100"})

	tx, err := svc.RequestWithdrawal(u.ID, dec("60"), "0xdest")
	require.NoError(t, err)

	resolved, err := svc.RejectWithdrawal(tx.ID, "address mismatch")
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusRejected, resolved.Status)

	// nothing was debited at request time, so nothing comes back
	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("500")))
	assert.True(t, w.WithdrawalEligible)
}

func TestApproveWithdrawalWrongType(t *testing.T) {
	db := setupTestDB(t)
	svc := newApprovalService(db)
	u := createUser(t, db, "0", nil)
	tx, err := svc.SubmitDeposit(u.ID, dec("100"), "0xabc")
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(tx.ID, "0xpayout", "")
	assert.ErrorIs(t, err, ErrWrongTxType)
	_, err = svc.ApproveDeposit(9999, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
