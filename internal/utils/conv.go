package utils

import (
	"strconv"
	"strings"
)

// ParseOptionalInt 解析可选整数参数：空串返回 nil，非整数返回错误
func ParseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
