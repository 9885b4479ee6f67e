package card

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// CardStatusUseCase 啟用、停用會員卡
type CardStatusUseCase struct {
	customers customer.Repository
	cards     card.Repository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	log       *zap.Logger
}

func NewCardStatusUseCase(
	customers customer.Repository,
	cards card.Repository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log *zap.Logger,
) *CardStatusUseCase {
	return &CardStatusUseCase{
		customers: customers,
		cards:     cards,
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

// Activate 重新啟用卡片；顧客必須為啟用狀態，其他啟用中的卡片會被停用
func (uc *CardStatusUseCase) Activate(ctx context.Context, cardID string) (*CardResult, error) {
	id, err := card.CardIDFromString(cardID)
	if err != nil {
		return nil, err
	}

	var changed []*card.MembershipCard
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		target, err := uc.cards.FindByID(tx, id)
		if err != nil {
			return err
		}
		owner, err := uc.customers.FindByID(tx, target.CustomerID())
		if err != nil {
			return err
		}
		if !owner.IsActive() {
			return customer.ErrCustomerInactive.WithContext("customer_id", owner.ID().String())
		}

		if err := target.Activate(); err != nil {
			return err
		}
		others, err := card.DeactivateActiveCards(tx, uc.cards, target.CustomerID())
		if err != nil {
			return err
		}
		if err := uc.cards.Update(tx, target); err != nil {
			return err
		}
		changed = append(others, target)
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatchCards(ctx, uc.log, uc.publisher, changed)
	return newCardResult(changed[len(changed)-1]), nil
}

// Deactivate 停用卡片（遺失、暫停使用）
func (uc *CardStatusUseCase) Deactivate(ctx context.Context, cardID string) (*CardResult, error) {
	id, err := card.CardIDFromString(cardID)
	if err != nil {
		return nil, err
	}

	var target *card.MembershipCard
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		found, err := uc.cards.FindByID(tx, id)
		if err != nil {
			return err
		}
		if err := found.Deactivate(); err != nil {
			return err
		}
		target = found
		return uc.cards.Update(tx, found)
	})
	if err != nil {
		return nil, err
	}

	dispatchCards(ctx, uc.log, uc.publisher, []*card.MembershipCard{target})
	return newCardResult(target), nil
}
