package billing

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Result-set values arrive with whatever Go type the driver chose. These
// helpers normalise them; a nil value reports ok=false.

func resolve(v interface{}) (interface{}, error) {
	if valuer, ok := v.(driver.Valuer); ok {
		if _, isDecimal := v.(decimal.Decimal); !isDecimal {
			return valuer.Value()
		}
	}
	return v, nil
}

func asInt64(v interface{}) (int64, bool, error) {
	v, err := resolve(v)
	if err != nil {
		return 0, false, err
	}
	switch n := v.(type) {
	case nil:
		return 0, false, nil
	case int:
		return int64(n), true, nil
	case int16:
		return int64(n), true, nil
	case int32:
		return int64(n), true, nil
	case int64:
		return n, true, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil, err
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		return i, err == nil, err
	case decimal.Decimal:
		if !n.IsInteger() {
			return 0, false, fmt.Errorf("%s is not an integer", n.String())
		}
		return n.IntPart(), true, nil
	default:
		return 0, false, fmt.Errorf("unsupported integer value of type %T", v)
	}
}

func asDecimal(v interface{}) (decimal.Decimal, bool, error) {
	v, err := resolve(v)
	if err != nil {
		return decimal.Zero, false, err
	}
	switch n := v.(type) {
	case nil:
		return decimal.Zero, false, nil
	case decimal.Decimal:
		return n, true, nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil, err
	case []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(string(n)))
		return d, err == nil, err
	case float64:
		return decimal.NewFromFloat(n), true, nil
	case int32:
		return decimal.NewFromInt32(n), true, nil
	case int64:
		return decimal.NewFromInt(n), true, nil
	case int:
		return decimal.NewFromInt(int64(n)), true, nil
	default:
		return decimal.Zero, false, fmt.Errorf("unsupported decimal value of type %T", v)
	}
}

func asString(v interface{}) (string, bool) {
	v, err := resolve(v)
	if err != nil {
		return "", false
	}
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return fmt.Sprint(s), true
	}
}

func asTime(v interface{}) (time.Time, bool, error) {
	v, err := resolve(v)
	if err != nil {
		return time.Time{}, false, err
	}
	switch t := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return t, true, nil
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		return parsed, err == nil, err
	default:
		return time.Time{}, false, fmt.Errorf("unsupported time value of type %T", v)
	}
}
