package typemap

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/go-data-exporter/adomd/engine"
)

// Text layouts accepted for datetime columns, tried in order. Layouts without
// an offset are interpreted as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func mismatch(want string, v engine.Value) error {
	return errors.Wrapf(ErrConversion, "cannot convert %s to %s", v, want)
}

// ToBool converts booleans, integers (non-zero is true) and boolean text.
func ToBool(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindBool:
		return v.AsBool(), nil
	case engine.KindInt:
		return v.AsInt() != 0, nil
	case engine.KindUint:
		return v.AsUint() != 0, nil
	case engine.KindString:
		b, err := strconv.ParseBool(strings.TrimSpace(v.AsString()))
		if err != nil {
			return nil, mismatch(TypeBool, v)
		}
		return b, nil
	}
	return nil, mismatch(TypeBool, v)
}

// ToInt converts to int64.
func ToInt(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindInt:
		return v.AsInt(), nil
	case engine.KindUint:
		if v.AsUint() > math.MaxInt64 {
			return nil, mismatch(TypeInt, v)
		}
		return int64(v.AsUint()), nil
	case engine.KindBool:
		if v.AsBool() {
			return int64(1), nil
		}
		return int64(0), nil
	case engine.KindString, engine.KindDecimal:
		n, err := strconv.ParseInt(strings.TrimSpace(v.AsString()), 10, 64)
		if err != nil {
			return nil, mismatch(TypeInt, v)
		}
		return n, nil
	}
	return nil, mismatch(TypeInt, v)
}

// ToUint converts to uint64.
func ToUint(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindUint:
		return v.AsUint(), nil
	case engine.KindInt:
		if v.AsInt() < 0 {
			return nil, mismatch(TypeUint, v)
		}
		return uint64(v.AsInt()), nil
	case engine.KindString, engine.KindDecimal:
		n, err := strconv.ParseUint(strings.TrimSpace(v.AsString()), 10, 64)
		if err != nil {
			return nil, mismatch(TypeUint, v)
		}
		return n, nil
	}
	return nil, mismatch(TypeUint, v)
}

// ToFloat converts to float64.
func ToFloat(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindFloat:
		return v.AsFloat(), nil
	case engine.KindInt:
		return float64(v.AsInt()), nil
	case engine.KindUint:
		return float64(v.AsUint()), nil
	case engine.KindString, engine.KindDecimal:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.AsString()), 64)
		if err != nil {
			return nil, mismatch(TypeFloat, v)
		}
		return f, nil
	}
	return nil, mismatch(TypeFloat, v)
}

// ToDecimal converts to decimal.Decimal. Text and integer payloads are exact;
// float payloads use the shortest decimal that round-trips the float.
func ToDecimal(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindDecimal, engine.KindString:
		d, err := decimal.NewFromString(strings.TrimSpace(v.AsString()))
		if err != nil {
			return nil, mismatch(TypeDecimal, v)
		}
		return d, nil
	case engine.KindInt:
		return decimal.NewFromInt(v.AsInt()), nil
	case engine.KindUint:
		return decimal.RequireFromString(strconv.FormatUint(v.AsUint(), 10)), nil
	case engine.KindFloat:
		f := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, mismatch(TypeDecimal, v)
		}
		return decimal.NewFromFloat(f), nil
	}
	return nil, mismatch(TypeDecimal, v)
}

// ToString converts text and text-like payloads to string.
func ToString(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindString, engine.KindDecimal:
		return v.AsString(), nil
	case engine.KindBytes:
		return string(v.AsBytes()), nil
	case engine.KindInt:
		return strconv.FormatInt(v.AsInt(), 10), nil
	case engine.KindUint:
		// System.Char arrives as a UTF-16 code unit.
		return string(rune(v.AsUint())), nil
	}
	return nil, mismatch(TypeString, v)
}

// ToUUID converts canonical text or 16 raw bytes to uuid.UUID.
func ToUUID(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindString:
		u, err := uuid.Parse(strings.TrimSpace(v.AsString()))
		if err != nil {
			return nil, mismatch(TypeUUID, v)
		}
		return u, nil
	case engine.KindBytes:
		u, err := uuid.FromBytes(v.AsBytes())
		if err != nil {
			return nil, mismatch(TypeUUID, v)
		}
		return u, nil
	case engine.KindObject:
		if u, ok := v.AsObject().(uuid.UUID); ok {
			return u, nil
		}
	}
	return nil, mismatch(TypeUUID, v)
}

// ToTime converts to time.Time. Time payloads keep their location, text
// payloads keep an explicit offset and default to UTC otherwise.
func ToTime(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindTime:
		return v.AsTime(), nil
	case engine.KindString:
		s := strings.TrimSpace(v.AsString())
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return nil, mismatch(TypeDateTime, v)
}

// ToDuration converts to time.Duration. Text may be a Go duration or the
// [-][d.]hh:mm:ss[.fffffff] form.
func ToDuration(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindDuration:
		return v.AsDuration(), nil
	case engine.KindInt:
		return time.Duration(v.AsInt()), nil
	case engine.KindString:
		s := strings.TrimSpace(v.AsString())
		if d, err := time.ParseDuration(s); err == nil {
			return d, nil
		}
		if d, ok := parseClockDuration(s); ok {
			return d, nil
		}
	}
	return nil, mismatch(TypeDuration, v)
}

// ToBytes converts binary and text payloads to []byte.
func ToBytes(v engine.Value) (any, error) {
	switch v.Kind() {
	case engine.KindBytes:
		return v.AsBytes(), nil
	case engine.KindString:
		return []byte(v.AsString()), nil
	}
	return nil, mismatch(TypeBytes, v)
}

// Identity returns the payload unchanged.
func Identity(v engine.Value) (any, error) {
	return v.Interface(), nil
}

func parseClockDuration(s string) (time.Duration, bool) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var days int64
	if dot := strings.IndexByte(s, '.'); dot >= 0 && dot < strings.IndexByte(s, ':') {
		n, err := strconv.ParseInt(s[:dot], 10, 64)
		if err != nil {
			return 0, false
		}
		days, s = n, s[dot+1:]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, false
	}
	m, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || m > 59 {
		return 0, false
	}
	sec, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || sec >= 60 {
		return 0, false
	}
	d := time.Duration(days)*24*time.Hour +
		time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(math.Round(sec*1e9))
	if neg {
		d = -d
	}
	return d, true
}
