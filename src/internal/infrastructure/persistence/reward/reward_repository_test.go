package reward

import (
	"testing"
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	return testdb.New(t, &RewardGORM{}, &CustomerRewardGORM{})
}

func mustReward(t *testing.T, name string, benefit reward.Benefit, validityDays int) *reward.Reward {
	t.Helper()
	r, err := reward.NewReward(name, tier.NewTierID(), benefit, validityDays)
	require.NoError(t, err)
	return r
}

func TestRewardRepository_BenefitRoundTrip(t *testing.T) {
	percent, _ := reward.NewPercentOff(decimal.RequireFromString("15"))
	amount, _ := reward.NewAmountOff(decimal.RequireFromString("200"))
	item, _ := reward.NewFreeItem("LATTE", 2)
	points, _ := reward.NewPointsMultiplier(decimal.RequireFromString("1.5"))

	tests := []struct {
		name    string
		benefit reward.Benefit
		want    string
	}{
		{"折扣百分比", percent, "15% off"},
		{"折抵金額", amount, "200.00 off"},
		{"免費商品", item, "2 x LATTE free"},
		{"點數倍率", points, "1.5x points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRewardRepository(setupDB(t))
			r := mustReward(t, "Reward "+tt.name, tt.benefit, 30)

			require.NoError(t, repo.Save(nil, r))
			found, err := repo.FindByID(nil, r.ID())

			require.NoError(t, err)
			assert.Equal(t, tt.benefit.Type(), found.Type())
			assert.Equal(t, tt.want, found.Benefit().Describe())
			assert.Equal(t, 30, found.ValidityDays())
			assert.True(t, found.MinTierID().Equals(r.MinTierID()))
		})
	}
}

func TestRewardRepository_FindByID_NotFound(t *testing.T) {
	repo := NewRewardRepository(setupDB(t))

	_, err := repo.FindByID(nil, reward.NewRewardID())

	assert.ErrorIs(t, err, reward.ErrRewardNotFound)
}

func TestRewardRepository_ListActive(t *testing.T) {
	repo := NewRewardRepository(setupDB(t))
	percent, _ := reward.NewPercentOff(decimal.NewFromInt(10))

	kept := mustReward(t, "Birthday", percent, 0)
	retired := mustReward(t, "Launch", percent, 0)
	retired.Deactivate()
	require.NoError(t, repo.Save(nil, kept))
	require.NoError(t, repo.Save(nil, retired))

	active, err := repo.ListActive(nil)

	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].ID().Equals(kept.ID()))
}

func TestCustomerRewardRepository_IssueAndRedeem(t *testing.T) {
	db := setupDB(t)
	repo := NewCustomerRewardRepository(db)
	percent, _ := reward.NewPercentOff(decimal.NewFromInt(10))
	r := mustReward(t, "Birthday", percent, 7)
	customerID := customer.NewCustomerID()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	cr, err := r.IssueTo(customerID, now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(nil, cr))

	require.NoError(t, cr.Redeem(now.Add(24*time.Hour)))
	require.NoError(t, repo.Update(nil, cr))

	found, err := repo.FindByID(nil, cr.ID())
	require.NoError(t, err)
	assert.True(t, found.IsRedeemed())
	require.NotNil(t, found.RedeemedAt())
	require.NotNil(t, found.ExpiryDate())
	assert.True(t, found.ExpiryDate().Equal(now.AddDate(0, 0, 7)))

	list, err := repo.ListByCustomer(nil, customerID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCustomerRewardRepository_Update_AlreadyRedeemedRow(t *testing.T) {
	repo := NewCustomerRewardRepository(setupDB(t))
	percent, _ := reward.NewPercentOff(decimal.NewFromInt(10))
	r := mustReward(t, "Birthday", percent, 0)
	now := time.Now()

	cr, err := r.IssueTo(customer.NewCustomerID(), now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(nil, cr))

	first, err := repo.FindByID(nil, cr.ID())
	require.NoError(t, err)
	second, err := repo.FindByID(nil, cr.ID())
	require.NoError(t, err)

	require.NoError(t, first.Redeem(now))
	require.NoError(t, repo.Update(nil, first))

	require.NoError(t, second.Redeem(now))
	err = repo.Update(nil, second)

	assert.ErrorIs(t, err, reward.ErrRewardAlreadyRedeemed)
}

func TestCustomerRewardRepository_FindByID_NotFound(t *testing.T) {
	repo := NewCustomerRewardRepository(setupDB(t))

	_, err := repo.FindByID(nil, reward.NewCustomerRewardID())

	assert.ErrorIs(t, err, reward.ErrCustomerRewardNotFound)
}

func TestDecodeBenefit_Invalid(t *testing.T) {
	_, err := decodeBenefit("percent_off", []byte(`{"percent":"abc"}`))
	assert.ErrorIs(t, err, reward.ErrInvalidBenefit)

	_, err = decodeBenefit("free_item", []byte(`{"sku":"LATTE"}`))
	assert.ErrorIs(t, err, reward.ErrInvalidBenefit)

	_, err = decodeBenefit("mystery", []byte(`{}`))
	assert.ErrorIs(t, err, reward.ErrInvalidBenefit)
}
