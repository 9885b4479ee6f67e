package card

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
)

// GetCardUseCase 依卡號或 NFC 查詢會員卡（POS 掃描、感應）
type GetCardUseCase struct {
	cards card.Repository
}

func NewGetCardUseCase(cards card.Repository) *GetCardUseCase {
	return &GetCardUseCase{cards: cards}
}

func (uc *GetCardUseCase) ByNumber(ctx context.Context, cardNumber string) (*CardResult, error) {
	number, err := card.NewCardNumber(cardNumber)
	if err != nil {
		return nil, err
	}
	c, err := uc.cards.FindByCardNumber(nil, number)
	if err != nil {
		return nil, err
	}
	return newCardResult(c), nil
}

func (uc *GetCardUseCase) ByNFC(ctx context.Context, nfc string) (*CardResult, error) {
	nfcID, err := card.NewNFCID(nfc)
	if err != nil {
		return nil, err
	}
	c, err := uc.cards.FindByNFCID(nil, nfcID)
	if err != nil {
		return nil, err
	}
	return newCardResult(c), nil
}

// ListByCustomer 顧客所有卡片，含停用與已換發
func (uc *GetCardUseCase) ListByCustomer(ctx context.Context, customerID string) ([]*CardResult, error) {
	id, err := customer.CustomerIDFromString(customerID)
	if err != nil {
		return nil, err
	}
	cards, err := uc.cards.ListByCustomer(nil, id)
	if err != nil {
		return nil, err
	}
	results := make([]*CardResult, 0, len(cards))
	for _, c := range cards {
		results = append(results, newCardResult(c))
	}
	return results, nil
}
