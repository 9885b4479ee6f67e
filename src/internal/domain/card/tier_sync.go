package card

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// SyncCustomerTier 讓顧客的啟用卡片跟隨目前等級（需在呼叫端的事務中執行）
//
// 返回實際更新的卡片數。
func SyncCustomerTier(tx shared.TransactionContext, repo Repository, customerID customer.CustomerID, tierID tier.TierID) (int, error) {
	active, err := repo.FindActiveByCustomer(tx, customerID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, c := range active {
		if !c.SyncTier(tierID) {
			continue
		}
		if err := repo.Update(tx, c); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// DeactivateActiveCards 停用顧客所有啟用卡片，返回被停用的卡片（事件尚未取出）
func DeactivateActiveCards(tx shared.TransactionContext, repo Repository, customerID customer.CustomerID) ([]*MembershipCard, error) {
	active, err := repo.FindActiveByCustomer(tx, customerID)
	if err != nil {
		return nil, err
	}
	for _, c := range active {
		if err := c.Deactivate(); err != nil {
			return nil, err
		}
		if err := repo.Update(tx, c); err != nil {
			return nil, err
		}
	}
	return active, nil
}
