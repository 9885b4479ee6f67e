package customer

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/application/events"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// DeactivateCustomerResult 停用結果（Output DTO）
type DeactivateCustomerResult struct {
	CustomerID       string
	DeactivatedCards []string // 一併停用的卡號
}

// DeactivateCustomerUseCase 停用顧客
//
// 交易、卡片與獎勵紀錄都保留；顧客的啟用卡片在同一事務中停用。
type DeactivateCustomerUseCase struct {
	customers customer.Repository
	cards     card.Repository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	log       *zap.Logger
}

func NewDeactivateCustomerUseCase(
	customers customer.Repository,
	cards card.Repository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log *zap.Logger,
) *DeactivateCustomerUseCase {
	return &DeactivateCustomerUseCase{
		customers: customers,
		cards:     cards,
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

func (uc *DeactivateCustomerUseCase) Execute(ctx context.Context, customerID string) (*DeactivateCustomerResult, error) {
	id, err := customer.CustomerIDFromString(customerID)
	if err != nil {
		return nil, err
	}

	var (
		deactivated []*card.MembershipCard
		updated     *customer.Customer
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		c, err := uc.customers.FindByID(tx, id)
		if err != nil {
			return err
		}
		if err := c.Deactivate(); err != nil {
			return err
		}
		if err := uc.customers.Update(tx, c); err != nil {
			return err
		}
		deactivated, err = card.DeactivateActiveCards(tx, uc.cards, id)
		if err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	recorders := []events.Recorder{updated}
	result := &DeactivateCustomerResult{CustomerID: id.String(), DeactivatedCards: []string{}}
	for _, c := range deactivated {
		recorders = append(recorders, c)
		result.DeactivatedCards = append(result.DeactivatedCards, c.CardNumber().String())
	}
	events.Dispatch(ctx, uc.log, uc.publisher, recorders...)
	return result, nil
}
