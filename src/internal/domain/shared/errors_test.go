package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

var errSample = shared.NewDomainError(shared.KindConflict, "SAMPLE_CONFLICT", "衝突")

func TestDomainError_WithContext_KeepsCodeAndKind(t *testing.T) {
	err := errSample.WithContext("card_number", "ABC123")

	assert.ErrorIs(t, err, errSample)
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
	assert.Equal(t, shared.ErrorCode("SAMPLE_CONFLICT"), shared.CodeOf(err))
	assert.Contains(t, err.Error(), "ABC123")
	assert.Empty(t, errSample.Context, "原始錯誤不應被修改")
}

func TestDomainError_WrappedWithFmt_StillMatches(t *testing.T) {
	err := fmt.Errorf("failed to replace card: %w", errSample.WithContext("k", "v"))

	assert.True(t, errors.Is(err, errSample))
	assert.Equal(t, shared.KindConflict, shared.KindOf(err))
}

func TestDomainError_WithContext_OddArgs_Panics(t *testing.T) {
	assert.Panics(t, func() {
		_ = errSample.WithContext("only-key")
	})
}

func TestKindOf_NonDomainError_IsInternal(t *testing.T) {
	assert.Equal(t, shared.KindInternal, shared.KindOf(errors.New("boom")))
	assert.Equal(t, shared.ErrorCode(""), shared.CodeOf(errors.New("boom")))
}
