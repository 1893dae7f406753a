package engine

import (
	"errors"
	"fmt"
)

// 定义基础错误类型，消息首段即错误种类，客户端按此分类
var (
	ErrDocumentEmpty  = errors.New("DocumentEmpty: no extractable text in resume")
	ErrUnknownJobRole = errors.New("UnknownJobRole: job role is not in the taxonomy")
	ErrInputTooLarge  = errors.New("InputTooLarge: input text exceeds the configured character limit")
	ErrDecodeFailure  = errors.New("DecodeFailure: document text could not be decoded")
	ErrInternal       = errors.New("InternalError: analysis failed unexpectedly")
)

// AnalysisError 包含详细错误信息的自定义错误
type AnalysisError struct {
	RequestID string
	Op        string
	BaseErr   error
	Detail    string
}

func (e *AnalysisError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (op:%s, request:%s): %s", e.BaseErr, e.Op, e.RequestID, e.Detail)
	}
	return fmt.Sprintf("%s (op:%s, request:%s)", e.BaseErr, e.Op, e.RequestID)
}

func (e *AnalysisError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *AnalysisError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewDocumentEmptyError(requestID, detail string) error {
	return &AnalysisError{
		RequestID: requestID,
		Op:        "validate",
		BaseErr:   ErrDocumentEmpty,
		Detail:    detail,
	}
}

func NewUnknownJobRoleError(requestID, detail string) error {
	return &AnalysisError{
		RequestID: requestID,
		Op:        "validate",
		BaseErr:   ErrUnknownJobRole,
		Detail:    detail,
	}
}

func NewInputTooLargeError(requestID, detail string) error {
	return &AnalysisError{
		RequestID: requestID,
		Op:        "validate",
		BaseErr:   ErrInputTooLarge,
		Detail:    detail,
	}
}

func NewDecodeFailureError(requestID, detail string) error {
	return &AnalysisError{
		RequestID: requestID,
		Op:        "decode",
		BaseErr:   ErrDecodeFailure,
		Detail:    detail,
	}
}

func NewInternalError(requestID, op, detail string) error {
	return &AnalysisError{
		RequestID: requestID,
		Op:        op,
		BaseErr:   ErrInternal,
		Detail:    detail,
	}
}
