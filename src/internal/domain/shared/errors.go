package shared

import (
	"errors"
	"fmt"
)

// ===========================
// 錯誤分類
// ===========================

// ErrorKind 錯誤種類，對應到 API 層的回應類別
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindConfiguration ErrorKind = "configuration"
	KindInternal      ErrorKind = "internal"
)

// ErrorCode 機器可讀的錯誤代碼（由各 bounded context 定義）
type ErrorCode string

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
//
// 設計原則：
// 1. Kind 決定 HTTP 狀態碼，Code 決定 errors.Is 比對
// 2. Context 只用於日誌與除錯
// 3. 不可變：WithContext 回傳新實例
type DomainError struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// NewDomainError 建立預定義錯誤（供各 package 宣告 sentinel error）
func NewDomainError(kind ErrorKind, code ErrorCode, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（key-value pairs）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 以錯誤代碼判斷（errors.Is）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// KindOf 取出錯誤鏈中第一個 DomainError 的種類；非領域錯誤視為 internal
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// CodeOf 取出錯誤鏈中第一個 DomainError 的代碼
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// 共用錯誤
var (
	ErrNegativeMoney = NewDomainError(KindValidation, "MONEY_NEGATIVE", "金額不能為負數")
	ErrInvalidMoney  = NewDomainError(KindValidation, "MONEY_INVALID", "無效的金額")
)
