package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tags the payload of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindDecimal
	KindString
	KindTime
	KindDuration
	KindBytes
	KindObject
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindInt:      "int",
	KindUint:     "uint",
	KindFloat:    "float",
	KindDecimal:  "decimal",
	KindString:   "string",
	KindTime:     "time",
	KindDuration: "duration",
	KindBytes:    "bytes",
	KindObject:   "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Value is a raw, not yet converted engine value. The zero Value is null.
//
// Decimal payloads are kept as their exact textual form so that converting
// them never goes through a binary float.
type Value struct {
	kind Kind
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	t    time.Time
	d    time.Duration
	raw  []byte
	obj  any
}

func Null() Value { return Value{} }
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }
func Int(v int64) Value { return Value{kind: KindInt, i: v} }
func Uint(v uint64) Value { return Value{kind: KindUint, u: v} }
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }
func String(v string) Value { return Value{kind: KindString, s: v} }
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }
func Duration(v time.Duration) Value { return Value{kind: KindDuration, d: v} }
func Bytes(v []byte) Value { return Value{kind: KindBytes, raw: v} }
func Object(v any) Value { return Value{kind: KindObject, obj: v} }
func DecimalText(text string) Value { return Value{kind: KindDecimal, s: text} }
func Decimal(v decimal.Decimal) Value { return Value{kind: KindDecimal, s: v.String()} }

// ValueOf wraps a Go value reported by a vendor library. Unknown types are
// carried as KindObject.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Null()
	case Value:
		return v
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Uint(uint64(v))
	case uint8:
		return Uint(uint64(v))
	case uint16:
		return Uint(uint64(v))
	case uint32:
		return Uint(uint64(v))
	case uint64:
		return Uint(v)
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case string:
		return String(v)
	case []byte:
		return Bytes(v)
	case time.Time:
		return Time(v)
	case time.Duration:
		return Duration(v)
	case decimal.Decimal:
		return Decimal(v)
	case uuid.UUID:
		return String(v.String())
	}
	return Object(v)
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Accessors return the payload for the matching kind and the zero value
// otherwise.

func (v Value) AsBool() bool { return v.b }
func (v Value) AsInt() int64 { return v.i }
func (v Value) AsUint() uint64 { return v.u }
func (v Value) AsFloat() float64 { return v.f }
func (v Value) AsTime() time.Time { return v.t }
func (v Value) AsDuration() time.Duration { return v.d }
func (v Value) AsBytes() []byte { return v.raw }
func (v Value) AsObject() any { return v.obj }

// AsString returns the string payload, or the decimal text for KindDecimal.
func (v Value) AsString() string {
	if v.kind == KindString || v.kind == KindDecimal {
		return v.s
	}
	return ""
}

// Interface returns the payload as a plain Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindDecimal, KindString:
		return v.s
	case KindTime:
		return v.t
	case KindDuration:
		return v.d
	case KindBytes:
		return v.raw
	case KindObject:
		return v.obj
	}
	return nil
}

func (v Value) String() string {
	if v.kind == KindNull {
		return "null"
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Interface())
}
