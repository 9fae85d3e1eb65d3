package service

import (
	"testing"
	"time"

	"credon/internal/domain"
	"credon/internal/models"
	"credon/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutomationToggle(t *testing.T) {
	db := setupTestDB(t)
	svc := newAutomationService(db)

	// missing setting defaults to on
	assert.True(t, svc.Enabled())

	enabled, err := svc.Toggle("admin@credon.io")
	require.NoError(t, err)
	assert.False(t, enabled)

	// the flag is persisted, not in-memory state
	assert.False(t, newAutomationService(db).Enabled())

	// the flip is a single UPDATE on the stored row, audit trail included
	row, err := repository.NewSettingRepository(db).GetRow(domain.SettingAutomationEnabled)
	require.NoError(t, err)
	assert.Equal(t, "false", row.Value)
	assert.Equal(t, "admin@credon.io", row.UpdatedBy)

	enabled, err = svc.Toggle("ops@credon.io")
	require.NoError(t, err)
	assert.True(t, enabled)

	row, err = repository.NewSettingRepository(db).GetRow(domain.SettingAutomationEnabled)
	require.NoError(t, err)
	assert.Equal(t, "true", row.Value)
	assert.Equal(t, "ops@credon.io", row.UpdatedBy)
}

func TestRunDailyCycleOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := newAutomationService(db)

	referrer := createUser(t, db, "0", nil)
	investor := createUser(t, db, "2000", &referrer.ID)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")
	_, err := newInvestmentService(db).Create(investor.ID, plan.ID, dec("1000"))
	require.NoError(t, err)

	// maturing today: the maturity day must still earn before principal returns
	now := time.Now().UTC()
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", 1).
		Update("maturity_date", now).Error)

	summaries := svc.RunDailyCycle(now)
	require.Len(t, summaries, 3)
	assert.Equal(t, "daily-roi", summaries[0].Job)
	assert.Equal(t, "referral-bonuses", summaries[1].Job)
	assert.Equal(t, "process-maturities", summaries[2].Job)
	assert.Equal(t, 1, summaries[0].Processed)
	assert.Equal(t, 1, summaries[1].Processed)
	assert.Equal(t, 1, summaries[2].Processed)

	// 1000 start wallet + 8 profit + 1000 principal back
	w := getWallet(t, db, investor.ID)
	assert.True(t, w.Balance.Equal(dec("2008")), "got %s", w.Balance)
	assert.True(t, w.TotalProfitEarned.Equal(dec("8")))

	// the upline got its cut of today's profit event in the same cycle
	wr := getWallet(t, db, referrer.ID)
	assert.True(t, wr.Balance.Equal(dec("1.6")), "got %s", wr.Balance)
}

func TestRunEligibilityReset(t *testing.T) {
	db := setupTestDB(t)
	svc := newAutomationService(db)

	a := createUser(t, db, "0", nil)
	b := createUser(t, db, "0", nil)
	c := createUser(t, db, "0", nil)
	setWallet(t, db, a.ID, map[string]interface{}{"withdrawal_eligible": false})
	setWallet(t, db, b.ID, map[string]interface{}{"withdrawal_eligible": false})

	summary := svc.RunEligibilityReset()
	assert.Equal(t, "reset-withdrawal-eligibility", summary.Job)
	assert.Equal(t, 2, summary.Processed)

	for _, u := range []uint{a.ID, b.ID, c.ID} {
		assert.True(t, getWallet(t, db, u).WithdrawalEligible)
	}
}

func TestManualRunSharesIdempotency(t *testing.T) {
	db := setupTestDB(t)
	svc := newAutomationService(db)

	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")
	_, err := newInvestmentService(db).Create(u.ID, plan.ID, dec("1000"))
	require.NoError(t, err)

	now := time.Now().UTC()
	first := svc.RunDailyROI(now)
	assert.Equal(t, 1, first.Processed)

	// a manual trigger after the scheduled run credits nothing extra,
	// even with automation switched off
	_, err = svc.Toggle("admin@credon.io")
	require.NoError(t, err)
	second := svc.RunDailyROI(now)
	assert.Equal(t, 0, second.Processed)
	assert.Equal(t, 1, second.Skipped)

	w, err := repository.NewWalletRepository(db).GetByUserID(u.ID)
	require.NoError(t, err)
	assert.True(t, w.TotalProfitEarned.Equal(dec("8")), "got %s", w.TotalProfitEarned)
}
