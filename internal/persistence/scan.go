package persistence

import (
	"fmt"
	"time"

	"github.com/aurora-share/server/pkg/errors"
)

// 行映射辅助函数
// pgx 的 rows.Values() 返回驱动侧类型（int4→int32 等），映射器用这些
// 助手做严格转换：可空列容忍 NULL，类型不符立即报 CONVERSION_ERROR

func conversionError(want string, got any) error {
	return errors.New(errors.ErrCodeConversion, fmt.Sprintf("expected %s, got %T", want, got))
}

// ExpectColumns 校验行的列数，映射器在取下标前必须先调用，
// 列数不符的行报 CONVERSION_ERROR 而不是越界
func ExpectColumns(row []any, want int) error {
	if len(row) != want {
		return errors.New(errors.ErrCodeConversion,
			fmt.Sprintf("expected %d columns, got %d", want, len(row)))
	}
	return nil
}

// AsInt 转换整型列
func AsInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int32:
		return int(n), nil
	case int16:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, conversionError("integer", v)
	}
}

// AsString 转换非空文本列
func AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", conversionError("string", v)
	}
	return s, nil
}

// AsNullString 转换可空文本列，NULL 映射为 nil
func AsNullString(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, conversionError("string or null", v)
	}
	return &s, nil
}

// AsTime 转换非空时间列
func AsTime(v any) (time.Time, error) {
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, conversionError("timestamp", v)
	}
	return t, nil
}

// AsNullTime 转换可空时间列，NULL 映射为 nil
func AsNullTime(v any) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	t, ok := v.(time.Time)
	if !ok {
		return nil, conversionError("timestamp or null", v)
	}
	return &t, nil
}

// AsBytes 转换可空字节串列，NULL 映射为 nil
func AsBytes(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, conversionError("bytes or null", v)
	}
	return b, nil
}

// AsBool 转换布尔列
func AsBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		return b != 0, nil
	case int32:
		return b != 0, nil
	default:
		return false, conversionError("boolean", v)
	}
}

// AsFloat64 转换浮点列
func AsFloat64(v any) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case float32:
		return float64(f), nil
	default:
		return 0, conversionError("float", v)
	}
}
