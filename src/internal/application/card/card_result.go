package card

import (
	"time"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
)

// CardResult 會員卡資料（Output DTO）
type CardResult struct {
	CardID         string
	CardNumber     string
	NFCID          string
	CustomerID     string
	TierID         string
	Status         string
	ActivationDate time.Time
	DeactivatedAt  *time.Time
	ReplacedBy     string
}

func newCardResult(c *card.MembershipCard) *CardResult {
	result := &CardResult{
		CardID:         c.ID().String(),
		CardNumber:     c.CardNumber().String(),
		NFCID:          c.NFCID().String(),
		CustomerID:     c.CustomerID().String(),
		Status:         c.Status().String(),
		ActivationDate: c.ActivationDate(),
		DeactivatedAt:  c.DeactivatedAt(),
	}
	if !c.TierID().IsEmpty() {
		result.TierID = c.TierID().String()
	}
	if !c.ReplacedBy().IsEmpty() {
		result.ReplacedBy = c.ReplacedBy().String()
	}
	return result
}
