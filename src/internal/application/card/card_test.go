package card

import (
	"context"
	"testing"

	"github.com/jackyeh168/loyalty_crm/src/internal/application/mocks"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ===========================
// Fixtures
// ===========================

type fixture struct {
	customers *mocks.CustomerRepository
	cards     *mocks.CardRepository
	generator *mocks.NumberGenerator
	publisher *mocks.EventPublisher
	tiers     map[string]*tier.Tier
	customer  *customer.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		customers: new(mocks.CustomerRepository),
		cards:     new(mocks.CardRepository),
		generator: &mocks.NumberGenerator{Numbers: []string{"LC-NEW1"}},
		publisher: &mocks.EventPublisher{},
		tiers:     mocks.StandardTiers(t),
	}
	f.customer = mocks.NewCustomer(t, "ada@example.com")
	f.customer.ApplySpend(shared.MustMoney("2000"), f.tiers["silver"])
	f.customer.PullEvents()
	f.customers.On("FindByID", mock.Anything, f.customer.ID()).Return(f.customer, nil)
	return f
}

func (f *fixture) issueUseCase() *IssueCardUseCase {
	return NewIssueCardUseCase(f.customers, f.cards, mocks.Catalog(f.tiers), f.generator,
		new(mocks.TransactionManager), f.publisher, zap.NewNop())
}

func (f *fixture) replaceUseCase() *ReplaceCardUseCase {
	return NewReplaceCardUseCase(f.cards, f.generator, new(mocks.TransactionManager), f.publisher, zap.NewNop())
}

func (f *fixture) existingCard(t *testing.T, number string) *card.MembershipCard {
	t.Helper()
	n, err := card.NewCardNumber(number)
	require.NoError(t, err)
	c, err := card.IssueCard(f.customer.ID(), n, card.NFCID{}, f.customer.TierID())
	require.NoError(t, err)
	c.PullEvents()
	return c
}

func cardNumber(t *testing.T, value string) card.CardNumber {
	t.Helper()
	n, err := card.NewCardNumber(value)
	require.NoError(t, err)
	return n
}

// ===========================
// IssueCard Tests
// ===========================

// Test 1: 發新卡時舊卡恰好被停用一次，只剩一張啟用卡
func TestIssueCard_DeactivatesPreviousCardExactlyOnce(t *testing.T) {
	// Arrange
	f := newFixture(t)
	old := f.existingCard(t, "LC-OLD1")
	f.cards.On("ExistsByCardNumber", mock.Anything, cardNumber(t, "LC-NEW1")).Return(false, nil)
	f.cards.On("FindActiveByCustomer", mock.Anything, f.customer.ID()).Return([]*card.MembershipCard{old}, nil)
	f.cards.On("Update", mock.Anything, old).Return(nil).Once()

	var saved *card.MembershipCard
	f.cards.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*card.MembershipCard) }).
		Return(nil)

	// Act
	result, err := f.issueUseCase().Execute(context.Background(), IssueCardCommand{CustomerID: f.customer.ID().String()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "LC-NEW1", result.CardNumber)
	assert.Equal(t, "active", result.Status)
	assert.Equal(t, f.tiers["silver"].ID().String(), result.TierID, "tier defaults to the customer's tier")
	assert.Equal(t, card.StatusInactive, old.Status())
	require.NotNil(t, saved)
	assert.True(t, saved.IsActive())
	f.cards.AssertNumberOfCalls(t, "Update", 1)
	assert.Equal(t, []string{"card.status_changed", "card.issued"}, f.publisher.Types())
}

// Test 2: 連續碰撞後放棄
func TestIssueCard_NumberExhausted(t *testing.T) {
	f := newFixture(t)
	f.cards.On("ExistsByCardNumber", mock.Anything, mock.Anything).Return(true, nil)

	_, err := f.issueUseCase().Execute(context.Background(), IssueCardCommand{CustomerID: f.customer.ID().String()})

	assert.ErrorIs(t, err, card.ErrCardNumberExhausted)
	f.cards.AssertNumberOfCalls(t, "ExistsByCardNumber", card.MaxCardNumberAttempts)
	f.cards.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Test 3: 指定等級與 NFC
func TestIssueCard_ExplicitTierAndNFC(t *testing.T) {
	f := newFixture(t)
	f.cards.On("ExistsByNFCID", mock.Anything, mock.Anything).Return(false, nil)
	f.cards.On("ExistsByCardNumber", mock.Anything, mock.Anything).Return(false, nil)
	f.cards.On("FindActiveByCustomer", mock.Anything, f.customer.ID()).Return([]*card.MembershipCard{}, nil)
	f.cards.On("Save", mock.Anything, mock.Anything).Return(nil)

	result, err := f.issueUseCase().Execute(context.Background(), IssueCardCommand{
		CustomerID: f.customer.ID().String(),
		TierID:     f.tiers["gold"].ID().String(),
		NFCID:      "04:a2:2b:c1",
		CardNumber: "pre-0001",
	})

	require.NoError(t, err)
	assert.Equal(t, "PRE-0001", result.CardNumber)
	assert.Equal(t, "04A22BC1", result.NFCID)
	assert.Equal(t, f.tiers["gold"].ID().String(), result.TierID)
}

// Test 4: 衝突與驗證錯誤
func TestIssueCard_Rejections(t *testing.T) {
	t.Run("指定卡號已存在", func(t *testing.T) {
		f := newFixture(t)
		f.cards.On("ExistsByCardNumber", mock.Anything, mock.Anything).Return(true, nil)
		_, err := f.issueUseCase().Execute(context.Background(), IssueCardCommand{
			CustomerID: f.customer.ID().String(), CardNumber: "PRE-0001",
		})
		assert.ErrorIs(t, err, card.ErrCardNumberTaken)
		assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	})

	t.Run("NFC 已被使用", func(t *testing.T) {
		f := newFixture(t)
		f.cards.On("ExistsByNFCID", mock.Anything, mock.Anything).Return(true, nil)
		_, err := f.issueUseCase().Execute(context.Background(), IssueCardCommand{
			CustomerID: f.customer.ID().String(), NFCID: "04A22BC1",
		})
		assert.ErrorIs(t, err, card.ErrNFCIDTaken)
	})

	t.Run("等級不存在", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.issueUseCase().Execute(context.Background(), IssueCardCommand{
			CustomerID: f.customer.ID().String(), TierID: tier.NewTierID().String(),
		})
		assert.ErrorIs(t, err, tier.ErrTierNotFound)
	})

	t.Run("顧客已停用", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.customer.Deactivate())
		_, err := f.issueUseCase().Execute(context.Background(), IssueCardCommand{CustomerID: f.customer.ID().String()})
		assert.ErrorIs(t, err, customer.ErrCustomerInactive)
	})

	t.Run("無效 NFC", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.issueUseCase().Execute(context.Background(), IssueCardCommand{
			CustomerID: f.customer.ID().String(), NFCID: "XYZ",
		})
		assert.ErrorIs(t, err, card.ErrInvalidNFCID)
	})
}

// ===========================
// CardStatus Tests
// ===========================

// Test 5: 重新啟用時停用其他啟用卡
func TestCardStatus_Activate(t *testing.T) {
	f := newFixture(t)
	current := f.existingCard(t, "LC-CUR1")
	dormant := f.existingCard(t, "LC-OLD1")
	require.NoError(t, dormant.Deactivate())
	dormant.PullEvents()

	f.cards.On("FindByID", mock.Anything, dormant.ID()).Return(dormant, nil)
	f.cards.On("FindActiveByCustomer", mock.Anything, f.customer.ID()).Return([]*card.MembershipCard{current}, nil)
	f.cards.On("Update", mock.Anything, mock.Anything).Return(nil)
	uc := NewCardStatusUseCase(f.customers, f.cards, new(mocks.TransactionManager), f.publisher, zap.NewNop())

	result, err := uc.Activate(context.Background(), dormant.ID().String())

	require.NoError(t, err)
	assert.Equal(t, "LC-OLD1", result.CardNumber)
	assert.True(t, dormant.IsActive())
	assert.False(t, current.IsActive())
	f.cards.AssertNumberOfCalls(t, "Update", 2)
}

// Test 6: 不允許無效的狀態轉換
func TestCardStatus_NoOpTransitions(t *testing.T) {
	f := newFixture(t)
	active := f.existingCard(t, "LC-CUR1")
	replaced := f.existingCard(t, "LC-OLD1")
	require.NoError(t, replaced.MarkReplaced(active.ID()))
	f.cards.On("FindByID", mock.Anything, active.ID()).Return(active, nil)
	f.cards.On("FindByID", mock.Anything, replaced.ID()).Return(replaced, nil)
	uc := NewCardStatusUseCase(f.customers, f.cards, new(mocks.TransactionManager), f.publisher, zap.NewNop())

	_, err := uc.Activate(context.Background(), active.ID().String())
	assert.ErrorIs(t, err, card.ErrCardAlreadyActive)

	_, err = uc.Deactivate(context.Background(), replaced.ID().String())
	assert.ErrorIs(t, err, card.ErrCardReplaced)

	f.cards.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// Test 7: 停用卡片
func TestCardStatus_Deactivate(t *testing.T) {
	f := newFixture(t)
	active := f.existingCard(t, "LC-CUR1")
	f.cards.On("FindByID", mock.Anything, active.ID()).Return(active, nil)
	f.cards.On("Update", mock.Anything, active).Return(nil)
	uc := NewCardStatusUseCase(f.customers, f.cards, new(mocks.TransactionManager), f.publisher, zap.NewNop())

	result, err := uc.Deactivate(context.Background(), active.ID().String())

	require.NoError(t, err)
	assert.Equal(t, "inactive", result.Status)
	assert.NotNil(t, result.DeactivatedAt)

	_, err = uc.Deactivate(context.Background(), active.ID().String())
	assert.ErrorIs(t, err, card.ErrCardAlreadyInactive)
}

// ===========================
// ReplaceCard Tests
// ===========================

// Test 8: 換卡成功
func TestReplaceCard_Success(t *testing.T) {
	// Arrange
	f := newFixture(t)
	old := f.existingCard(t, "LC-OLD1")
	f.cards.On("ExistsByCardNumber", mock.Anything, cardNumber(t, "LC-NEW2")).Return(false, nil)
	f.cards.On("FindByCardNumber", mock.Anything, cardNumber(t, "LC-OLD1")).Return(old, nil)
	f.cards.On("Update", mock.Anything, old).Return(nil)
	f.cards.On("FindActiveByCustomer", mock.Anything, f.customer.ID()).Return([]*card.MembershipCard{}, nil)
	f.cards.On("Save", mock.Anything, mock.Anything).Return(nil)

	// Act
	result, err := f.replaceUseCase().Execute(context.Background(), ReplaceCardCommand{
		OldCardNumber: "lc-old1",
		NewCardNumber: "LC-NEW2",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "replaced", result.OldCard.Status)
	assert.Equal(t, result.NewCard.CardID, result.OldCard.ReplacedBy)
	assert.Equal(t, "active", result.NewCard.Status)
	assert.Equal(t, old.CustomerID().String(), result.NewCard.CustomerID)
	assert.Equal(t, old.TierID().String(), result.NewCard.TierID)
	assert.Equal(t, []string{"card.status_changed", "card.issued"}, f.publisher.Types())
}

// Test 9: 新卡號已存在 → 衝突，舊卡不變
func TestReplaceCard_ExistingNumber_LeavesOriginalUntouched(t *testing.T) {
	f := newFixture(t)
	old := f.existingCard(t, "LC-OLD1")
	f.cards.On("ExistsByCardNumber", mock.Anything, cardNumber(t, "LC-USED")).Return(true, nil)

	_, err := f.replaceUseCase().Execute(context.Background(), ReplaceCardCommand{
		OldCardNumber: "LC-OLD1",
		NewCardNumber: "LC-USED",
	})

	assert.ErrorIs(t, err, card.ErrCardNumberTaken)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	assert.True(t, old.IsActive())
	assert.True(t, old.ReplacedBy().IsEmpty())
	f.cards.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.cards.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// Test 10: 新卡保存失敗時回傳衝突（事務回滾由 TransactionManager 負責）
func TestReplaceCard_SaveConflict_Propagates(t *testing.T) {
	f := newFixture(t)
	old := f.existingCard(t, "LC-OLD1")
	f.cards.On("ExistsByCardNumber", mock.Anything, mock.Anything).Return(false, nil)
	f.cards.On("FindByCardNumber", mock.Anything, mock.Anything).Return(old, nil)
	f.cards.On("Update", mock.Anything, old).Return(nil)
	f.cards.On("FindActiveByCustomer", mock.Anything, mock.Anything).Return([]*card.MembershipCard{}, nil)
	f.cards.On("Save", mock.Anything, mock.Anything).Return(card.ErrCardNumberTaken)

	_, err := f.replaceUseCase().Execute(context.Background(), ReplaceCardCommand{OldCardNumber: "LC-OLD1"})

	assert.ErrorIs(t, err, card.ErrCardNumberTaken)
	assert.Empty(t, f.publisher.Events)
}

// Test 11: 已換發的卡不能再換
func TestReplaceCard_AlreadyReplaced(t *testing.T) {
	f := newFixture(t)
	old := f.existingCard(t, "LC-OLD1")
	require.NoError(t, old.MarkReplaced(card.NewCardID()))
	f.cards.On("ExistsByCardNumber", mock.Anything, mock.Anything).Return(false, nil)
	f.cards.On("FindByCardNumber", mock.Anything, mock.Anything).Return(old, nil)

	_, err := f.replaceUseCase().Execute(context.Background(), ReplaceCardCommand{OldCardNumber: "LC-OLD1"})

	assert.ErrorIs(t, err, card.ErrCardReplaced)
}

// ===========================
// GetCard Tests
// ===========================

func TestGetCard(t *testing.T) {
	f := newFixture(t)
	c := f.existingCard(t, "LC-CUR1")
	uc := NewGetCardUseCase(f.cards)

	t.Run("依卡號", func(t *testing.T) {
		f.cards.On("FindByCardNumber", mock.Anything, cardNumber(t, "LC-CUR1")).Return(c, nil)
		result, err := uc.ByNumber(context.Background(), "lc-cur1")
		require.NoError(t, err)
		assert.Equal(t, c.ID().String(), result.CardID)
	})

	t.Run("依 NFC 找不到", func(t *testing.T) {
		f.cards.On("FindByNFCID", mock.Anything, mock.Anything).Return(nil, card.ErrCardNotFound)
		_, err := uc.ByNFC(context.Background(), "04A22BC1")
		assert.ErrorIs(t, err, card.ErrCardNotFound)
	})

	t.Run("顧客的所有卡片", func(t *testing.T) {
		f.cards.On("ListByCustomer", mock.Anything, f.customer.ID()).Return([]*card.MembershipCard{c}, nil)
		results, err := uc.ListByCustomer(context.Background(), f.customer.ID().String())
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})
}
