package services

import (
	"errors"
	"fmt"
)

// ValidationError 请求参数不合法，计算前即拒绝
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidParam(param, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Param: param, Message: fmt.Sprintf(format, args...)}
}

// IsValidation 判断 err 链中是否有 ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RecordError 单条线程记录无法读取或解析，导入时跳过而不是中止
type RecordError struct {
	Name string
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s: %v", e.Name, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ErrNotFound 按主键查找不到记录
var ErrNotFound = errors.New("not found")
