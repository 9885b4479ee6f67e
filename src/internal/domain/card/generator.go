package card

import "context"

// MaxCardNumberAttempts 產生卡號的最大嘗試次數
const MaxCardNumberAttempts = 5

// NumberGenerator 隨機卡號來源（由 Infrastructure 實作）
type NumberGenerator interface {
	Generate() (CardNumber, error)
}

// NumberTakenFunc 檢查卡號是否已被使用
type NumberTakenFunc func(ctx context.Context, number CardNumber) (bool, error)

// AllocateNumber 產生一個未被使用的卡號
//
// 最多嘗試 MaxCardNumberAttempts 次，全部碰撞時返回 ErrCardNumberExhausted。
func AllocateNumber(ctx context.Context, gen NumberGenerator, taken NumberTakenFunc) (CardNumber, error) {
	for attempt := 1; attempt <= MaxCardNumberAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return CardNumber{}, err
		}

		number, err := gen.Generate()
		if err != nil {
			return CardNumber{}, err
		}

		exists, err := taken(ctx, number)
		if err != nil {
			return CardNumber{}, err
		}
		if !exists {
			return number, nil
		}
	}
	return CardNumber{}, ErrCardNumberExhausted.WithContext("attempts", MaxCardNumberAttempts)
}
