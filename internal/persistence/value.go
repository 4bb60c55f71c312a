package persistence

import "time"

// Kind 过滤值的类型标签
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindString
	KindTime
	KindBytes
	KindBool
)

// Value 封闭的参数值变体
// 过滤与写入的值只能是这几种类型之一，查询构建器据此安全绑定参数，
// 不做运行时类型推断
type Value struct {
	kind  Kind
	i     int64
	s     string
	t     time.Time
	bs    []byte
	b     bool
}

// Null 空值
func Null() Value { return Value{kind: KindNull} }

// Int 整型值
func Int(v int) Value { return Value{kind: KindInt, i: int64(v)} }

// Int64 64位整型值
func Int64(v int64) Value { return Value{kind: KindInt, i: v} }

// String 字符串值
func String(v string) Value { return Value{kind: KindString, s: v} }

// Time 时间值
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }

// Bytes 字节串值
func Bytes(v []byte) Value { return Value{kind: KindBytes, bs: v} }

// Bool 布尔值
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Kind 返回值的类型标签
func (v Value) Kind() Kind { return v.kind }

// Arg 返回用于参数绑定的Go值
func (v Value) Arg() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindString:
		return v.s
	case KindTime:
		return v.t
	case KindBytes:
		return v.bs
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Clause 一个 列名→值 约束
type Clause struct {
	Col string
	Val Value
}

// Filter 有序的等值过滤条件集合
type Filter []Clause

// Where 构建单条件过滤
func Where(col string, val Value) Filter {
	return Filter{{Col: col, Val: val}}
}

// And 追加一个等值条件
func (f Filter) And(col string, val Value) Filter {
	return append(f, Clause{Col: col, Val: val})
}

// Fields 有序的 列名→值 写入集合（INSERT/UPDATE）
type Fields []Clause

// Set 构建单字段写入集合
func Set(col string, val Value) Fields {
	return Fields{{Col: col, Val: val}}
}

// Set 追加一个写入字段
func (f Fields) Set(col string, val Value) Fields {
	return append(f, Clause{Col: col, Val: val})
}

// args 返回子句集合的绑定参数列表
func args(clauses []Clause) []any {
	out := make([]any, len(clauses))
	for i, c := range clauses {
		out[i] = c.Val.Arg()
	}
	return out
}
