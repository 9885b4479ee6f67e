package customer

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// ===========================
// Customer Domain 錯誤定義
// ===========================

const (
	ErrCodeInvalidCustomerID        shared.ErrorCode = "CUSTOMER_ID_INVALID"
	ErrCodeInvalidName              shared.ErrorCode = "CUSTOMER_NAME_INVALID"
	ErrCodeInvalidEmail             shared.ErrorCode = "CUSTOMER_EMAIL_INVALID"
	ErrCodeInvalidPhoneNumber       shared.ErrorCode = "PHONE_NUMBER_INVALID"
	ErrCodeCustomerNotFound         shared.ErrorCode = "CUSTOMER_NOT_FOUND"
	ErrCodeCustomerExists           shared.ErrorCode = "CUSTOMER_ALREADY_EXISTS"
	ErrCodeCustomerInactive         shared.ErrorCode = "CUSTOMER_INACTIVE"
	ErrCodeTierNotOverridden        shared.ErrorCode = "CUSTOMER_TIER_NOT_OVERRIDDEN"
	ErrCodeConcurrentModification   shared.ErrorCode = "CUSTOMER_CONCURRENT_MODIFICATION"
	ErrCodeCustomerRepositoryFailed shared.ErrorCode = "CUSTOMER_REPOSITORY_ERROR"
)

var (
	ErrInvalidCustomerID  = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidCustomerID, "無效的顧客 ID")
	ErrInvalidName        = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidName, "顧客姓名不能為空")
	ErrInvalidEmail       = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidEmail, "無效的電子郵件")
	ErrInvalidPhoneNumber = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidPhoneNumber, "無效的手機號碼格式")
	ErrCustomerNotFound   = shared.NewDomainError(shared.KindNotFound, ErrCodeCustomerNotFound, "顧客不存在")
	ErrCustomerExists     = shared.NewDomainError(shared.KindConflict, ErrCodeCustomerExists, "顧客已存在")
	ErrCustomerInactive   = shared.NewDomainError(shared.KindValidation, ErrCodeCustomerInactive, "顧客已停用")
	ErrTierNotOverridden  = shared.NewDomainError(shared.KindValidation, ErrCodeTierNotOverridden, "顧客等級未被手動指定")

	// ErrConcurrentModification 樂觀鎖版本不符（其他請求已先更新同一位顧客）
	ErrConcurrentModification = shared.NewDomainError(shared.KindConflict, ErrCodeConcurrentModification, "顧客資料已被其他操作修改，請重試")

	ErrRepositoryError = shared.NewDomainError(shared.KindInternal, ErrCodeCustomerRepositoryFailed, "顧客倉儲操作失敗")
)
