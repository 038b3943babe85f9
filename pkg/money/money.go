// Package money holds KWD amounts as integer fils (1 KWD = 1000 fils).
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scale is the number of fils in one dinar.
const Scale = 1000

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a monetary value in fils.
type Amount int64

// FromFloat rounds a dinar value to the nearest fil.
func FromFloat(v float64) Amount {
	return Amount(math.Round(v * Scale))
}

// Parse reads a decimal dinar string such as "2.5" or "-0.250". More than
// three decimal places, or a value outside the int64 fils range, is invalid.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(frac) > 3 {
		return 0, fmt.Errorf("%w: %q has more than 3 decimal places", ErrInvalidAmount, s)
	}

	for len(frac) < 3 {
		frac += "0"
	}
	f, _ := strconv.ParseInt(frac, 10, 64)

	var w int64
	if whole != "" {
		var err error
		if w, err = strconv.ParseInt(whole, 10, 64); err != nil {
			return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
		}
	}
	if w > (math.MaxInt64-f)/Scale {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidAmount, s)
	}

	units := w*Scale + f
	if neg {
		units = -units
	}
	return Amount(units), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (a Amount) Add(b Amount) Amount { return a + b }
func (a Amount) Sub(b Amount) Amount { return a - b }

// Mul multiplies by a quantity.
func (a Amount) Mul(q int) Amount { return a * Amount(q) }

// Float returns the dinar value. Use only for display or export.
func (a Amount) Float() float64 { return float64(a) / Scale }

// String renders the amount with exactly three fraction digits.
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%03d", sign, v/Scale, v%Scale)
}

// Format prefixes the amount with a currency code, e.g. "KWD 3.500".
func (a Amount) Format(currency string) string {
	if currency == "" {
		return a.String()
	}
	return currency + " " + a.String()
}

// Sum adds all amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// MarshalJSON encodes the amount as a decimal string so no float rounding happens on the wire.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a decimal string or a JSON number.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = s
	}
	v, err := Parse(raw)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
