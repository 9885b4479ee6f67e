// Package mocks testify/mock 實作的倉儲與外部依賴，供 Application Layer 單元測試共用
package mocks

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/ledger"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"github.com/stretchr/testify/mock"
)

// ===========================
// Transaction / Events
// ===========================

// TransactionManager 直接以 nil context 執行 fn
type TransactionManager struct {
	mock.Mock
}

func (m *TransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	return fn(nil)
}

// EventPublisher 記錄所有被發布的事件
type EventPublisher struct {
	Events []shared.DomainEvent
}

func (p *EventPublisher) Publish(event shared.DomainEvent) error {
	p.Events = append(p.Events, event)
	return nil
}

func (p *EventPublisher) PublishBatch(events []shared.DomainEvent) error {
	p.Events = append(p.Events, events...)
	return nil
}

// Types 依序返回已發布事件的類型
func (p *EventPublisher) Types() []string {
	types := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.EventType())
	}
	return types
}

// ===========================
// Customer
// ===========================

type CustomerRepository struct {
	mock.Mock
}

func (m *CustomerRepository) Create(ctx shared.TransactionContext, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepository) Update(ctx shared.TransactionContext, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CustomerRepository) FindByID(ctx shared.TransactionContext, id customer.CustomerID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *CustomerRepository) FindByEmail(ctx shared.TransactionContext, email customer.Email) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *CustomerRepository) ExistsByEmail(ctx shared.TransactionContext, email customer.Email) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// ===========================
// Tier
// ===========================

// CatalogProvider 固定返回建構時給定的等級
type CatalogProvider struct {
	Tiers []*tier.Tier
	Err   error
}

func (p *CatalogProvider) ListActiveTiers(ctx context.Context) ([]*tier.Tier, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	active := make([]*tier.Tier, 0, len(p.Tiers))
	for _, t := range p.Tiers {
		if t.IsActive() {
			active = append(active, t)
		}
	}
	return active, nil
}

type TierRepository struct {
	mock.Mock
}

func (m *TierRepository) Save(ctx shared.TransactionContext, t *tier.Tier) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TierRepository) FindByID(ctx shared.TransactionContext, id tier.TierID) (*tier.Tier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tier.Tier), args.Error(1)
}

func (m *TierRepository) FindAll(ctx shared.TransactionContext) ([]*tier.Tier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tier.Tier), args.Error(1)
}

// ===========================
// Ledger
// ===========================

type LedgerRepository struct {
	mock.Mock
}

func (m *LedgerRepository) Save(ctx shared.TransactionContext, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *LedgerRepository) Update(ctx shared.TransactionContext, tx *ledger.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *LedgerRepository) Delete(ctx shared.TransactionContext, id ledger.TransactionID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *LedgerRepository) FindByID(ctx shared.TransactionContext, id ledger.TransactionID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *LedgerRepository) FindByReferenceID(ctx shared.TransactionContext, referenceID string) (*ledger.Transaction, error) {
	args := m.Called(ctx, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *LedgerRepository) ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*ledger.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledger.Transaction), args.Error(1)
}

// SpendCalculator 累積消費計算
type SpendCalculator struct {
	mock.Mock
}

func (m *SpendCalculator) CalculateTotalSpend(ctx context.Context, customerID customer.CustomerID) (shared.Money, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(shared.Money), args.Error(1)
}

// ===========================
// Card
// ===========================

type CardRepository struct {
	mock.Mock
}

func (m *CardRepository) Save(ctx shared.TransactionContext, c *card.MembershipCard) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CardRepository) Update(ctx shared.TransactionContext, c *card.MembershipCard) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CardRepository) FindByID(ctx shared.TransactionContext, id card.CardID) (*card.MembershipCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.MembershipCard), args.Error(1)
}

func (m *CardRepository) FindByCardNumber(ctx shared.TransactionContext, number card.CardNumber) (*card.MembershipCard, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.MembershipCard), args.Error(1)
}

func (m *CardRepository) FindByNFCID(ctx shared.TransactionContext, nfcID card.NFCID) (*card.MembershipCard, error) {
	args := m.Called(ctx, nfcID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*card.MembershipCard), args.Error(1)
}

func (m *CardRepository) FindActiveByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*card.MembershipCard, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.MembershipCard), args.Error(1)
}

func (m *CardRepository) ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*card.MembershipCard, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*card.MembershipCard), args.Error(1)
}

func (m *CardRepository) ExistsByCardNumber(ctx shared.TransactionContext, number card.CardNumber) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *CardRepository) ExistsByNFCID(ctx shared.TransactionContext, nfcID card.NFCID) (bool, error) {
	args := m.Called(ctx, nfcID)
	return args.Bool(0), args.Error(1)
}

// NumberGenerator 依序返回預先設定的卡號
type NumberGenerator struct {
	Numbers []string
	next    int
}

func (g *NumberGenerator) Generate() (card.CardNumber, error) {
	value := g.Numbers[g.next%len(g.Numbers)]
	g.next++
	return card.NewCardNumber(value)
}

// ===========================
// Reward
// ===========================

type RewardRepository struct {
	mock.Mock
}

func (m *RewardRepository) Save(ctx shared.TransactionContext, r *reward.Reward) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RewardRepository) FindByID(ctx shared.TransactionContext, id reward.RewardID) (*reward.Reward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.Reward), args.Error(1)
}

func (m *RewardRepository) ListActive(ctx shared.TransactionContext) ([]*reward.Reward, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reward.Reward), args.Error(1)
}

type CustomerRewardRepository struct {
	mock.Mock
}

func (m *CustomerRewardRepository) Save(ctx shared.TransactionContext, cr *reward.CustomerReward) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *CustomerRewardRepository) Update(ctx shared.TransactionContext, cr *reward.CustomerReward) error {
	args := m.Called(ctx, cr)
	return args.Error(0)
}

func (m *CustomerRewardRepository) FindByID(ctx shared.TransactionContext, id reward.CustomerRewardID) (*reward.CustomerReward, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.CustomerReward), args.Error(1)
}

func (m *CustomerRewardRepository) ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*reward.CustomerReward, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reward.CustomerReward), args.Error(1)
}

var (
	_ shared.TransactionManager       = (*TransactionManager)(nil)
	_ shared.EventPublisher           = (*EventPublisher)(nil)
	_ customer.Repository             = (*CustomerRepository)(nil)
	_ tier.CatalogProvider            = (*CatalogProvider)(nil)
	_ tier.Repository                 = (*TierRepository)(nil)
	_ ledger.Repository               = (*LedgerRepository)(nil)
	_ card.Repository                 = (*CardRepository)(nil)
	_ card.NumberGenerator            = (*NumberGenerator)(nil)
	_ reward.Repository               = (*RewardRepository)(nil)
	_ reward.CustomerRewardRepository = (*CustomerRewardRepository)(nil)
)
