// Package tostring renders converted result values as text for the export
// codecs, flagging values that should be written as NULL.
package tostring

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var jsonStd = jsoniter.ConfigCompatibleWithStandardLibrary

// String is a rendered value. IsNULL marks an absent value.
type String struct {
	String string
	IsNULL bool
}

// ToString renders v. Decimals keep their exact digits, times use
// RFC3339Nano with the original offset, and durations use Go notation.
// Values without a dedicated case go through json.Marshaler, fmt.Stringer or
// JSON encoding, in that order; JSON null, [] and {} render as NULL.
func ToString(v any) String {
	switch v := v.(type) {
	case nil:
		return String{IsNULL: true}
	case string:
		return String{String: v}
	case []byte:
		return String{String: string(v)}
	case bool:
		return String{String: strconv.FormatBool(v)}
	case int:
		return String{String: strconv.Itoa(v)}
	case int32:
		return String{String: strconv.FormatInt(int64(v), 10)}
	case int64:
		return String{String: strconv.FormatInt(v, 10)}
	case uint32:
		return String{String: strconv.FormatUint(uint64(v), 10)}
	case uint64:
		return String{String: strconv.FormatUint(v, 10)}
	case float32:
		return String{String: strconv.FormatFloat(float64(v), 'f', -1, 32)}
	case float64:
		return String{String: strconv.FormatFloat(v, 'f', -1, 64)}
	case decimal.Decimal:
		return String{String: v.String()}
	case uuid.UUID:
		return String{String: v.String()}
	case time.Time:
		if v.IsZero() {
			return String{IsNULL: true}
		}
		return String{String: v.Format(time.RFC3339Nano)}
	case time.Duration:
		return String{String: v.String()}
	}
	if m, ok := v.(json.Marshaler); ok {
		if data, err := m.MarshalJSON(); err == nil {
			return fromJSON(data)
		}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return String{String: s.String()}
	}
	if data, err := jsonStd.Marshal(v); err == nil {
		return fromJSON(data)
	}
	return String{String: fmt.Sprintf("%v", v)}
}

func fromJSON(data []byte) String {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "[]", "{}", "null":
		return String{IsNULL: true}
	}
	return String{String: s}
}
