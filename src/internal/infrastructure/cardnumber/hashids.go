// Package cardnumber 以 hashids 產生會員卡號
package cardnumber

import (
	"fmt"
	"math/rand/v2"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/config"
	"github.com/speps/go-hashids/v2"
)

// Alphabet 大寫英數字，去除容易混淆的 0/O、1/I
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Prefix 所有卡號的前綴
const Prefix = "LC-"

// HashIDGenerator 將隨機數以 hashids 編碼成卡號
//
// 唯一性不由編碼保證，由 card.AllocateNumber 查詢倉儲確認。
type HashIDGenerator struct {
	h    *hashids.HashID
	rand func() int64
}

// NewHashIDGenerator 依 cards.salt / cards.min_length 建立產生器
func NewHashIDGenerator(cfg config.CardsConfig) (*HashIDGenerator, error) {
	hd := hashids.NewData()
	hd.Alphabet = Alphabet
	hd.Salt = cfg.Salt
	hd.MinLength = cfg.MinLength

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, config.ErrInvalidConfig.WithContext("key", "cards", "reason", err.Error())
	}
	return &HashIDGenerator{
		h:    h,
		rand: func() int64 { return rand.Int64N(1 << 40) },
	}, nil
}

var _ card.NumberGenerator = (*HashIDGenerator)(nil)

// Generate 產生一個候選卡號
func (g *HashIDGenerator) Generate() (card.CardNumber, error) {
	encoded, err := g.h.EncodeInt64([]int64{g.rand()})
	if err != nil {
		return card.CardNumber{}, fmt.Errorf("encode card number: %w", err)
	}
	return card.NewCardNumber(Prefix + encoded)
}
