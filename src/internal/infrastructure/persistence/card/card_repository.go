package card

import (
	"strings"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// CardRepositoryImpl 會員卡倉儲（GORM）
type CardRepositoryImpl struct {
	db *gorm.DB
}

// NewCardRepository 創建會員卡倉儲
func NewCardRepository(db *gorm.DB) card.Repository {
	return &CardRepositoryImpl{db: db}
}

// Save 新增卡片
//
// 錯誤處理：
// - nfc_id 唯一約束違反 → ErrNFCIDTaken
// - card_number 唯一約束違反 → ErrCardNumberTaken
func (r *CardRepositoryImpl) Save(ctx shared.TransactionContext, c *card.MembershipCard) error {
	if err := persistence.DB(ctx, r.db).Create(toGORM(c)).Error; err != nil {
		return r.mapWriteError("save card", c, err)
	}
	return nil
}

// Update 更新狀態、等級與換卡資訊（map 更新，NULL 也會寫入）
func (r *CardRepositoryImpl) Update(ctx shared.TransactionContext, c *card.MembershipCard) error {
	model := toGORM(c)
	result := persistence.DB(ctx, r.db).
		Model(&MembershipCardGORM{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"nfc_id":          model.NFCID,
			"tier_id":         model.TierID,
			"status":          model.Status,
			"activation_date": model.ActivationDate,
			"deactivated_at":  model.DeactivatedAt,
			"replaced_by":     model.ReplacedBy,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		return r.mapWriteError("update card", c, result.Error)
	}
	if result.RowsAffected == 0 {
		return card.ErrCardNotFound.WithContext("card_id", model.ID)
	}
	return nil
}

func (r *CardRepositoryImpl) FindByID(ctx shared.TransactionContext, id card.CardID) (*card.MembershipCard, error) {
	return r.findOne(ctx, "id = ?", id.String(), "card_id")
}

func (r *CardRepositoryImpl) FindByCardNumber(ctx shared.TransactionContext, number card.CardNumber) (*card.MembershipCard, error) {
	return r.findOne(ctx, "card_number = ?", number.String(), "card_number")
}

func (r *CardRepositoryImpl) FindByNFCID(ctx shared.TransactionContext, nfcID card.NFCID) (*card.MembershipCard, error) {
	return r.findOne(ctx, "nfc_id = ?", nfcID.String(), "nfc_id")
}

// FindActiveByCustomer 顧客目前的啟用卡片
func (r *CardRepositoryImpl) FindActiveByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*card.MembershipCard, error) {
	var models []MembershipCardGORM
	err := persistence.DB(ctx, r.db).
		Where("customer_id = ? AND status = ?", customerID.String(), card.StatusActive.String()).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, persistence.WrapError(card.ErrRepositoryError, "list active cards", err)
	}
	return toDomainList(models)
}

// ListByCustomer 顧客所有卡片，依建立時間排序
func (r *CardRepositoryImpl) ListByCustomer(ctx shared.TransactionContext, customerID customer.CustomerID) ([]*card.MembershipCard, error) {
	var models []MembershipCardGORM
	err := persistence.DB(ctx, r.db).
		Where("customer_id = ?", customerID.String()).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, persistence.WrapError(card.ErrRepositoryError, "list cards", err)
	}
	return toDomainList(models)
}

func (r *CardRepositoryImpl) ExistsByCardNumber(ctx shared.TransactionContext, number card.CardNumber) (bool, error) {
	return r.exists(ctx, "card_number = ?", number.String())
}

func (r *CardRepositoryImpl) ExistsByNFCID(ctx shared.TransactionContext, nfcID card.NFCID) (bool, error) {
	return r.exists(ctx, "nfc_id = ?", nfcID.String())
}

func (r *CardRepositoryImpl) findOne(ctx shared.TransactionContext, query, value, key string) (*card.MembershipCard, error) {
	var model MembershipCardGORM
	if err := persistence.DB(ctx, r.db).Where(query, value).First(&model).Error; err != nil {
		if persistence.IsNotFound(err) {
			return nil, card.ErrCardNotFound.WithContext(key, value)
		}
		return nil, persistence.WrapError(card.ErrRepositoryError, "find card", err)
	}
	return model.toDomain()
}

func (r *CardRepositoryImpl) exists(ctx shared.TransactionContext, query, value string) (bool, error) {
	var count int64
	if err := persistence.DB(ctx, r.db).Model(&MembershipCardGORM{}).Where(query, value).Count(&count).Error; err != nil {
		return false, persistence.WrapError(card.ErrRepositoryError, "count cards", err)
	}
	return count > 0, nil
}

// mapWriteError 依違反的唯一索引區分卡號與 NFC 衝突
func (r *CardRepositoryImpl) mapWriteError(op string, c *card.MembershipCard, err error) error {
	if !persistence.IsDuplicateKeyErr(err) {
		return persistence.WrapError(card.ErrRepositoryError, op, err)
	}
	if strings.Contains(err.Error(), "nfc_id") {
		return card.ErrNFCIDTaken.WithContext("nfc_id", c.NFCID().String())
	}
	return card.ErrCardNumberTaken.WithContext("card_number", c.CardNumber().String())
}
