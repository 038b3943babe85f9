package money

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Amount{
		"2.5":   2500,
		"3":     3000,
		"0.25":  250,
		"0.75":  750,
		".5":    500,
		"-1":    -1000,
		"6.375": 6375,
		"0.001": 1,

		"9223372036854775.807": math.MaxInt64,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{
		"", "abc", "1.2.3", "1,5", ".",
		"0.0004", "1.2345",
		"9999999999999999", "-9999999999999999", "9223372036854775.808",
	} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "3.500", Amount(3500).String())
	assert.Equal(t, "0.000", Amount(0).String())
	assert.Equal(t, "-0.250", Amount(-250).String())
	assert.Equal(t, "KWD 10.500", Amount(10500).Format("KWD"))
}

func TestMulIsExact(t *testing.T) {
	price := MustParse("3.0").Add(MustParse("0.5"))
	assert.Equal(t, MustParse("7.000"), price.Mul(2))
	assert.Equal(t, MustParse("10.500"), price.Mul(3))
	assert.Equal(t, MustParse("0.300"), Sum(MustParse("0.1"), MustParse("0.2")))
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, Amount(1100), FromFloat(1.1))
	assert.Equal(t, Amount(850), FromFloat(0.85))
}

func TestJSON(t *testing.T) {
	type line struct {
		Price Amount `json:"price"`
	}

	data, err := json.Marshal(line{Price: 2500})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"2.500"}`, string(data))

	var fromString, fromNumber line
	require.NoError(t, json.Unmarshal([]byte(`{"price":"0.75"}`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`{"price":0.75}`), &fromNumber))
	assert.Equal(t, Amount(750), fromString.Price)
	assert.Equal(t, Amount(750), fromNumber.Price)
}
