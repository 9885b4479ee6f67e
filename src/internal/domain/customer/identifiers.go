package customer

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// CustomerMarker 是 CustomerID 的標記類型
type CustomerMarker struct{}

// CustomerID 顧客的唯一標識符
type CustomerID = shared.EntityID[CustomerMarker]

// NewCustomerID 生成新的顧客 ID
func NewCustomerID() CustomerID {
	return shared.NewEntityID[CustomerMarker]()
}

// CustomerIDFromString 從字串解析顧客 ID（失敗返回 ErrInvalidCustomerID）
func CustomerIDFromString(s string) (CustomerID, error) {
	return shared.EntityIDFromString[CustomerMarker](s, ErrInvalidCustomerID)
}
