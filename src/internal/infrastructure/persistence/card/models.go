package card

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
)

// MembershipCardGORM 會員卡資料表模型
//
// 資料庫約束：
// - card_number: 唯一索引
// - nfc_id: 唯一索引，可為空（NULL 不互相衝突）
// - (customer_id, status): 索引（查詢顧客的啟用卡片）
type MembershipCardGORM struct {
	ID         string  `gorm:"column:id;type:varchar(36);primaryKey"`
	CustomerID string  `gorm:"column:customer_id;type:varchar(36);not null;index:idx_cards_customer_status"`
	CardNumber string  `gorm:"column:card_number;type:varchar(32);uniqueIndex;not null"`
	NFCID      *string `gorm:"column:nfc_id;type:varchar(20);uniqueIndex"`
	TierID     *string `gorm:"column:tier_id;type:varchar(36)"`
	Status     string  `gorm:"column:status;type:varchar(16);not null;index:idx_cards_customer_status"`

	ActivationDate time.Time  `gorm:"column:activation_date;not null"`
	DeactivatedAt  *time.Time `gorm:"column:deactivated_at"`
	ReplacedBy     *string    `gorm:"column:replaced_by;type:varchar(36)"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName 指定資料表名稱
func (MembershipCardGORM) TableName() string {
	return "membership_cards"
}

func (m *MembershipCardGORM) toDomain() (*card.MembershipCard, error) {
	id, err := card.CardIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := customer.CustomerIDFromString(m.CustomerID)
	if err != nil {
		return nil, err
	}
	number, err := card.NewCardNumber(m.CardNumber)
	if err != nil {
		return nil, err
	}

	var nfcID card.NFCID
	if m.NFCID != nil {
		nfcID, err = card.NewNFCID(*m.NFCID)
		if err != nil {
			return nil, err
		}
	}

	var tierID tier.TierID
	if m.TierID != nil {
		tierID, err = tier.TierIDFromString(*m.TierID)
		if err != nil {
			return nil, err
		}
	}

	var replacedBy card.CardID
	if m.ReplacedBy != nil {
		replacedBy, err = card.CardIDFromString(*m.ReplacedBy)
		if err != nil {
			return nil, err
		}
	}

	return card.ReconstructCard(
		id,
		customerID,
		number,
		nfcID,
		tierID,
		card.Status(m.Status),
		m.ActivationDate,
		m.DeactivatedAt,
		replacedBy,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toGORM(c *card.MembershipCard) *MembershipCardGORM {
	model := &MembershipCardGORM{
		ID:             c.ID().String(),
		CustomerID:     c.CustomerID().String(),
		CardNumber:     c.CardNumber().String(),
		Status:         c.Status().String(),
		ActivationDate: c.ActivationDate(),
		DeactivatedAt:  c.DeactivatedAt(),
		CreatedAt:      c.CreatedAt(),
		UpdatedAt:      c.UpdatedAt(),
	}
	if !c.NFCID().IsZero() {
		s := c.NFCID().String()
		model.NFCID = &s
	}
	if !c.TierID().IsEmpty() {
		s := c.TierID().String()
		model.TierID = &s
	}
	if !c.ReplacedBy().IsEmpty() {
		s := c.ReplacedBy().String()
		model.ReplacedBy = &s
	}
	return model
}

func toDomainList(models []MembershipCardGORM) ([]*card.MembershipCard, error) {
	cards := make([]*card.MembershipCard, 0, len(models))
	for i := range models {
		c, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
