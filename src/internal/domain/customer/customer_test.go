package customer

import (
	"testing"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer(t *testing.T) *Customer {
	t.Helper()
	email, err := NewEmail("ada@example.com")
	require.NoError(t, err)
	c, err := NewCustomer("Ada Lovelace", email, PhoneNumber{})
	require.NoError(t, err)
	c.PullEvents()
	return c
}

func newTestTier(t *testing.T, name, threshold string, inviteOnly bool) *tier.Tier {
	t.Helper()
	tr, err := tier.NewTier(name, shared.MustMoney(threshold), 1, inviteOnly)
	require.NoError(t, err)
	return tr
}

// Test 1: 新顧客的初始狀態
func TestNewCustomer_ValidInput_Success(t *testing.T) {
	// Arrange
	email, _ := NewEmail("Ada@Example.com")
	phone, _ := NewPhoneNumber("0912-345-678")

	// Act
	c, err := NewCustomer("  Ada Lovelace ", email, phone)

	// Assert
	require.NoError(t, err)
	assert.False(t, c.ID().IsEmpty())
	assert.Equal(t, "Ada Lovelace", c.Name())
	assert.Equal(t, "ada@example.com", c.Email().String())
	assert.Equal(t, "0912345678", c.Phone().String())
	assert.True(t, c.TotalSpend().IsZero())
	assert.False(t, c.HasTier())
	assert.True(t, c.IsActive())
	assert.Equal(t, 1, c.Version())

	events := c.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "customer.registered", events[0].EventType())
}

// Test 2: 姓名或 email 缺漏
func TestNewCustomer_InvalidInput_ReturnsError(t *testing.T) {
	email, _ := NewEmail("ada@example.com")

	_, err := NewCustomer("   ", email, PhoneNumber{})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewCustomer("Ada", Email{}, PhoneNumber{})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

// Test 3: 消費變動時套用解析出的等級並記錄事件
func TestCustomer_ApplySpend_AssignsResolvedTier(t *testing.T) {
	// Arrange
	c := newTestCustomer(t)
	silver := newTestTier(t, "Silver", "1500", false)

	// Act
	changed := c.ApplySpend(shared.MustMoney("1800"), silver)

	// Assert
	assert.True(t, changed)
	assert.Equal(t, "1800.00", c.TotalSpend().String())
	assert.True(t, c.TierID().Equals(silver.ID()))

	events := c.PullEvents()
	require.Len(t, events, 1)
	evt, ok := events[0].(*TierChangedEvent)
	require.True(t, ok)
	assert.True(t, evt.PreviousTier().IsEmpty())
	assert.True(t, evt.CurrentTier().Equals(silver.ID()))
	assert.Equal(t, TierChangeReasonSpend, evt.Reason())
}

// Test 4: 等級未變動時不產生事件
func TestCustomer_ApplySpend_SameTier_NoEvent(t *testing.T) {
	c := newTestCustomer(t)
	member := newTestTier(t, "Member", "0", false)
	c.ApplySpend(shared.MustMoney("100"), member)
	c.PullEvents()

	changed := c.ApplySpend(shared.MustMoney("200"), member)

	assert.False(t, changed)
	assert.Empty(t, c.PullEvents())
	assert.Equal(t, "200.00", c.TotalSpend().String())
}

// Test 5: 手動指定的等級不會被消費變動覆蓋
func TestCustomer_OverrideTier_PinsTier(t *testing.T) {
	// Arrange
	c := newTestCustomer(t)
	champion := newTestTier(t, "Champion", "0", true)
	gold := newTestTier(t, "Gold", "5000", false)

	// Act
	require.NoError(t, c.OverrideTier(champion))
	changed := c.ApplySpend(shared.MustMoney("9000"), gold)

	// Assert
	assert.False(t, changed)
	assert.True(t, c.IsTierOverridden())
	assert.True(t, c.TierID().Equals(champion.ID()))
	assert.Equal(t, "9000.00", c.TotalSpend().String(), "消費仍然會更新")

	events := c.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, TierChangeReasonOverride, events[0].(*TierChangedEvent).Reason())
}

// Test 6: 取消手動指定
func TestCustomer_ClearOverride(t *testing.T) {
	c := newTestCustomer(t)
	champion := newTestTier(t, "Champion", "0", true)
	member := newTestTier(t, "Member", "0", false)

	t.Run("未指定時返回錯誤", func(t *testing.T) {
		_, err := c.ClearOverride(member)
		assert.ErrorIs(t, err, ErrTierNotOverridden)
	})

	t.Run("回到解析等級", func(t *testing.T) {
		require.NoError(t, c.OverrideTier(champion))

		changed, err := c.ClearOverride(member)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.False(t, c.IsTierOverridden())
		assert.True(t, c.TierID().Equals(member.ID()))
	})
}

// Test 7: 停用顧客
func TestCustomer_Deactivate(t *testing.T) {
	c := newTestCustomer(t)

	require.NoError(t, c.Deactivate())
	assert.False(t, c.IsActive())

	err := c.Deactivate()
	assert.ErrorIs(t, err, ErrCustomerInactive)

	err = c.OverrideTier(newTestTier(t, "Gold", "5000", false))
	assert.ErrorIs(t, err, ErrCustomerInactive)
}

// Test 8: 重建不驗證業務規則、不產生事件
func TestReconstructCustomer(t *testing.T) {
	email, _ := NewEmail("ada@example.com")
	id := NewCustomerID()
	tierID := tier.NewTierID()

	c, err := ReconstructCustomer(id, "Ada", email, PhoneNumber{}, shared.MustMoney("750"), tierID, false, true, testTime, testTime, 7)

	require.NoError(t, err)
	assert.True(t, c.ID().Equals(id))
	assert.Equal(t, 7, c.Version())
	assert.Empty(t, c.PullEvents())

	c.AdvanceVersion()
	assert.Equal(t, 8, c.Version())

	_, err = ReconstructCustomer(CustomerID{}, "Ada", email, PhoneNumber{}, shared.ZeroMoney(), tierID, false, true, testTime, testTime, 1)
	assert.ErrorIs(t, err, ErrInvalidCustomerID)
}
