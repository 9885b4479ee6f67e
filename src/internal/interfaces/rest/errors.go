package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
)

// ErrInvalidRequest 請求內容無法解析（JSON 格式錯誤、必填欄位缺漏）
var ErrInvalidRequest = shared.NewDomainError(shared.KindValidation, "INVALID_REQUEST", "無效的請求內容")

type errorPayload struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware 把 handler 留在 c.Errors 的最後一個錯誤轉成 JSON 回應
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

// AbortWithError 記錄錯誤並中止後續 handler
func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	kind := shared.KindOf(err)
	payload := errorPayload{
		Kind: string(kind),
		Code: string(shared.CodeOf(err)),
	}

	var status int
	switch kind {
	case shared.KindValidation:
		status = http.StatusBadRequest
	case shared.KindNotFound:
		status = http.StatusNotFound
	case shared.KindConflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	// 內部錯誤不外洩細節
	if status == http.StatusInternalServerError {
		if payload.Code == "" {
			payload.Code = "INTERNAL_ERROR"
		}
		payload.Message = "internal server error"
		return status, payload
	}

	payload.Message = domainMessage(err)
	return status, payload
}

func domainMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
