package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisErrorFormat(t *testing.T) {
	err := NewUnknownJobRoleError("req-1", `role "astronaut"`)
	assert.Equal(t,
		`UnknownJobRole: job role is not in the taxonomy (op:validate, request:req-1): role "astronaut"`,
		err.Error())

	// 无detail时省略尾段
	bare := &AnalysisError{RequestID: "req-2", Op: "decode", BaseErr: ErrDecodeFailure}
	assert.Equal(t,
		"DecodeFailure: document text could not be decoded (op:decode, request:req-2)",
		bare.Error())
}

func TestAnalysisErrorIs(t *testing.T) {
	cases := []struct {
		err  error
		base error
	}{
		{NewDocumentEmptyError("r", "d"), ErrDocumentEmpty},
		{NewUnknownJobRoleError("r", "d"), ErrUnknownJobRole},
		{NewInputTooLargeError("r", "d"), ErrInputTooLarge},
		{NewDecodeFailureError("r", "d"), ErrDecodeFailure},
		{NewInternalError("r", "op", "d"), ErrInternal},
	}
	for _, c := range cases {
		assert.True(t, errors.Is(c.err, c.base))
		// 不跨类别混淆
		for _, other := range cases {
			if other.base != c.base {
				assert.False(t, errors.Is(c.err, other.base))
			}
		}
	}
}

func TestAnalysisErrorUnwrap(t *testing.T) {
	err := NewInternalError("r", "analyze", "panic: boom")

	var ae *AnalysisError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, "analyze", ae.Op)
	assert.Equal(t, ErrInternal, errors.Unwrap(err))
}
