package reward

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// RewardMarker 是 RewardID 的標記類型
type RewardMarker struct{}

// RewardID 獎勵定義的唯一標識符
type RewardID = shared.EntityID[RewardMarker]

func NewRewardID() RewardID {
	return shared.NewEntityID[RewardMarker]()
}

func RewardIDFromString(s string) (RewardID, error) {
	return shared.EntityIDFromString[RewardMarker](s, ErrInvalidRewardID)
}

// CustomerRewardMarker 是 CustomerRewardID 的標記類型
type CustomerRewardMarker struct{}

// CustomerRewardID 已發放獎勵的唯一標識符
type CustomerRewardID = shared.EntityID[CustomerRewardMarker]

func NewCustomerRewardID() CustomerRewardID {
	return shared.NewEntityID[CustomerRewardMarker]()
}

func CustomerRewardIDFromString(s string) (CustomerRewardID, error) {
	return shared.EntityIDFromString[CustomerRewardMarker](s, ErrInvalidCustomerRewardID)
}
