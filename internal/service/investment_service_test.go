package service

import (
	"testing"
	"time"

	"credon/internal/domain"
	"credon/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvestment(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")

	inv, err := svc.Create(u.ID, plan.ID, dec("1000"))
	require.NoError(t, err)

	assert.Equal(t, domain.InvestmentActive, inv.Status)
	assert.Equal(t, "Gold", inv.PlanName)
	assert.True(t, inv.DailyProfit.Equal(dec("8")), "got %s", inv.DailyProfit)
	assert.Equal(t, inv.StartDate.AddDate(0, 12, 0), inv.MaturityDate)

	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("1000")), "got %s", w.Balance)
	assert.True(t, w.TotalInvested.Equal(dec("1000")), "got %s", w.TotalInvested)
}

func TestCreateInvestmentBelowMinimum(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")

	_, err := svc.Create(u.ID, plan.ID, dec("999"))
	assert.ErrorIs(t, err, domain.ErrBelowMinimum)
}

func TestCreateInvestmentInsufficientBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "500", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")

	_, err := svc.Create(u.ID, plan.ID, dec("1000"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// the failed debit must not leave a half-created investment behind
	var count int64
	db.Model(&models.Investment{}).Count(&count)
	assert.Zero(t, count)
	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("500")))
}

func TestCreateInvestmentInactivePlan(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Legacy", "0.8", 12, "100")
	require.NoError(t, db.Model(plan).Update("is_active", false).Error)

	_, err := svc.Create(u.ID, plan.ID, dec("1000"))
	assert.ErrorIs(t, err, ErrPlanInactive)
}

func TestAccrueDailyIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")
	_, err := svc.Create(u.ID, plan.ID, dec("1000"))
	require.NoError(t, err)

	now := time.Now().UTC()
	first := svc.AccrueDaily(now)
	assert.Equal(t, 1, first.Processed)
	assert.Equal(t, 0, first.Failed)

	second := svc.AccrueDaily(now)
	assert.Equal(t, 0, second.Processed)
	assert.Equal(t, 1, second.Skipped)

	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("1008")), "got %s", w.Balance)
	assert.True(t, w.TotalProfitEarned.Equal(dec("8")), "got %s", w.TotalProfitEarned)

	var accruals int64
	db.Model(&models.RoiAccrual{}).Count(&accruals)
	assert.EqualValues(t, 1, accruals)

	inv, err := svc.investmentRepo.GetByID(1)
	require.NoError(t, err)
	assert.True(t, inv.TotalProfitEarned.Equal(dec("8")))
}

func TestAccrueDailyMaturityDayStillEarns(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")
	_, err := svc.Create(u.ID, plan.ID, dec("1000"))
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", 1).
		Update("maturity_date", now).Error)

	summary := svc.AccrueDaily(now)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 0, summary.Skipped)
}

func TestAccrueDailySkipsPastMaturity(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")
	_, err := svc.Create(u.ID, plan.ID, dec("1000"))
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", 1).
		Update("maturity_date", now.AddDate(0, 0, -2)).Error)

	summary := svc.AccrueDaily(now)
	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)

	w := getWallet(t, db, u.ID)
	assert.True(t, w.TotalProfitEarned.Equal(dec("0")))
}

func TestProcessMaturitiesReturnsPrincipalOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")
	_, err := svc.Create(u.ID, plan.ID, dec("1000"))
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, db.Model(&models.Investment{}).Where("id = ?", 1).
		Update("maturity_date", now.AddDate(0, 0, -1)).Error)

	first := svc.ProcessMaturities(now)
	assert.Equal(t, 1, first.Processed)

	inv, err := svc.investmentRepo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, domain.InvestmentMatured, inv.Status)

	w := getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("2000")), "got %s", w.Balance)
	// total_invested stays as the historical high-water mark
	assert.True(t, w.TotalInvested.Equal(dec("1000")))

	second := svc.ProcessMaturities(now)
	assert.Equal(t, 0, second.Processed)
	w = getWallet(t, db, u.ID)
	assert.True(t, w.Balance.Equal(dec("2000")))
}

func TestProcessMaturitiesLeavesRunningInvestments(t *testing.T) {
	db := setupTestDB(t)
	svc := newInvestmentService(db)
	u := createUser(t, db, "2000", nil)
	plan := createPlan(t, db, "Gold", "0.8", 12, "1000")
	_, err := svc.Create(u.ID, plan.ID, dec("1000"))
	require.NoError(t, err)

	summary := svc.ProcessMaturities(time.Now().UTC())
	assert.Equal(t, 0, summary.Processed)

	inv, err := svc.investmentRepo.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, domain.InvestmentActive, inv.Status)
}
