package ledger

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// ===========================
// Ledger Domain 錯誤定義
// ===========================

const (
	ErrCodeInvalidTransactionID  shared.ErrorCode = "TRANSACTION_ID_INVALID"
	ErrCodeInvalidAmount         shared.ErrorCode = "TRANSACTION_AMOUNT_INVALID"
	ErrCodeInvalidSource         shared.ErrorCode = "TRANSACTION_SOURCE_INVALID"
	ErrCodeInvalidStatus         shared.ErrorCode = "TRANSACTION_STATUS_INVALID"
	ErrCodeInvalidReference      shared.ErrorCode = "TRANSACTION_REFERENCE_INVALID"
	ErrCodeInvalidTransition     shared.ErrorCode = "TRANSACTION_STATUS_TRANSITION_INVALID"
	ErrCodeTransactionNotFound   shared.ErrorCode = "TRANSACTION_NOT_FOUND"
	ErrCodeDuplicateReference    shared.ErrorCode = "TRANSACTION_DUPLICATE_REFERENCE"
	ErrCodeSourceUnavailable     shared.ErrorCode = "LEDGER_SOURCE_UNAVAILABLE"
	ErrCodeSourcePayloadInvalid  shared.ErrorCode = "LEDGER_SOURCE_PAYLOAD_INVALID"
	ErrCodeLedgerRepositoryError shared.ErrorCode = "LEDGER_REPOSITORY_ERROR"
)

var (
	ErrInvalidTransactionID = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidTransactionID, "無效的交易 ID")
	ErrInvalidAmount        = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidAmount, "交易金額必須大於 0")
	ErrInvalidSource        = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidSource, "無效的交易來源")
	ErrInvalidStatus        = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidStatus, "無效的交易狀態")
	ErrInvalidReference     = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidReference, "交易參考編號不能為空")
	ErrInvalidTransition    = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidTransition, "交易狀態無法如此變更")
	ErrTransactionNotFound  = shared.NewDomainError(shared.KindNotFound, ErrCodeTransactionNotFound, "交易不存在")

	// ErrDuplicateReference 同一筆外部銷售已入帳
	ErrDuplicateReference = shared.NewDomainError(shared.KindConflict, ErrCodeDuplicateReference, "參考編號已存在")

	// 外部來源（電商、POS）錯誤：原樣回報給呼叫端，不重試
	ErrSourceUnavailable    = shared.NewDomainError(shared.KindInternal, ErrCodeSourceUnavailable, "交易來源無法連線")
	ErrSourcePayloadInvalid = shared.NewDomainError(shared.KindInternal, ErrCodeSourcePayloadInvalid, "交易來源回傳格式錯誤")

	ErrRepositoryError = shared.NewDomainError(shared.KindInternal, ErrCodeLedgerRepositoryError, "交易倉儲操作失敗")
)
