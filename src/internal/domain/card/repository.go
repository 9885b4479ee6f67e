package card

import (
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
)

// Repository 會員卡倉儲接口
//
// 寫操作 ctx 必須 non-nil；讀操作 ctx 可為 nil。
type Repository interface {
	// Save 新增卡片；卡號或 NFC 重複時返回 ErrCardNumberTaken / ErrNFCIDTaken
	Save(ctx shared.TransactionContext, card *MembershipCard) error

	// Update 更新狀態、等級與換卡資訊
	Update(ctx shared.TransactionContext, card *MembershipCard) error

	FindByID(ctx shared.TransactionContext, id CardID) (*MembershipCard, error)
	FindByCardNumber(ctx shared.TransactionContext, number CardNumber) (*MembershipCard, error)
	FindByNFCID(ctx shared.TransactionContext, nfcID NFCID) (*MembershipCard, error)

	// FindActiveByCustomer 顧客目前的啟用卡片（正常情況下最多一張）
	FindActiveByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*MembershipCard, error)

	// ListByCustomer 顧客所有卡片（含停用、已換發），依建立時間排序
	ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*MembershipCard, error)

	ExistsByCardNumber(ctx shared.TransactionContext, number CardNumber) (bool, error)
	ExistsByNFCID(ctx shared.TransactionContext, nfcID NFCID) (bool, error)
}
