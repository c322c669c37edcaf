package order

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberError is returned when a numeric document field holds text that is
// not a number.
type NumberError struct {
	Value string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("not a number: %q", e.Value)
}

// Measure is a decimal quantity (weight, dimension, count, money) as it
// appears in order documents. It accepts JSON numbers, numeric strings and
// null; null, "" and an absent field all read as zero.
type Measure struct {
	decimal.Decimal
}

func NewMeasure(s string) (Measure, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Measure{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Measure{}, &NumberError{Value: s}
	}
	return Measure{Decimal: d}, nil
}

func MustMeasure(s string) Measure {
	m, err := NewMeasure(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Measure) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		m.Decimal = decimal.Zero
		return nil
	}

	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return &NumberError{Value: s}
		}
		s = unquoted
	}

	parsed, err := NewMeasure(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Measure) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func measureValue(v reflect.Value) any {
	m, ok := v.Interface().(Measure)
	if !ok {
		return nil
	}
	return m.InexactFloat64()
}
