package reward

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// ===========================
// Reward Domain 錯誤定義
// ===========================

const (
	ErrCodeInvalidRewardID         shared.ErrorCode = "REWARD_ID_INVALID"
	ErrCodeInvalidCustomerRewardID shared.ErrorCode = "CUSTOMER_REWARD_ID_INVALID"
	ErrCodeInvalidRewardName       shared.ErrorCode = "REWARD_NAME_INVALID"
	ErrCodeInvalidBenefit          shared.ErrorCode = "REWARD_BENEFIT_INVALID"
	ErrCodeInvalidValidity         shared.ErrorCode = "REWARD_VALIDITY_INVALID"
	ErrCodeRewardNotFound          shared.ErrorCode = "REWARD_NOT_FOUND"
	ErrCodeCustomerRewardNotFound  shared.ErrorCode = "CUSTOMER_REWARD_NOT_FOUND"
	ErrCodeRewardInactive          shared.ErrorCode = "REWARD_INACTIVE"
	ErrCodeTierNotEligible         shared.ErrorCode = "REWARD_TIER_NOT_ELIGIBLE"
	ErrCodeAlreadyRedeemed         shared.ErrorCode = "REWARD_ALREADY_REDEEMED"
	ErrCodeRewardExpired           shared.ErrorCode = "REWARD_EXPIRED"
	ErrCodeRewardRepositoryError   shared.ErrorCode = "REWARD_REPOSITORY_ERROR"
)

var (
	ErrInvalidRewardID         = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidRewardID, "無效的獎勵 ID")
	ErrInvalidCustomerRewardID = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidCustomerRewardID, "無效的已發放獎勵 ID")
	ErrInvalidRewardName       = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidRewardName, "獎勵名稱不能為空")
	ErrInvalidBenefit          = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidBenefit, "無效的獎勵內容")
	ErrInvalidValidity         = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidValidity, "有效天數不能為負數")
	ErrRewardNotFound          = shared.NewDomainError(shared.KindNotFound, ErrCodeRewardNotFound, "獎勵不存在")
	ErrCustomerRewardNotFound  = shared.NewDomainError(shared.KindNotFound, ErrCodeCustomerRewardNotFound, "已發放獎勵不存在")
	ErrRewardInactive          = shared.NewDomainError(shared.KindValidation, ErrCodeRewardInactive, "獎勵已停用")
	ErrTierNotEligible         = shared.NewDomainError(shared.KindValidation, ErrCodeTierNotEligible, "顧客等級不符合獎勵資格")

	ErrRewardAlreadyRedeemed = shared.NewDomainError(shared.KindConflict, ErrCodeAlreadyRedeemed, "獎勵已兌換")
	ErrRewardExpired         = shared.NewDomainError(shared.KindValidation, ErrCodeRewardExpired, "獎勵已過期")

	ErrRepositoryError = shared.NewDomainError(shared.KindInternal, ErrCodeRewardRepositoryError, "獎勵倉儲操作失敗")
)
