package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound_BankersRounding(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1"},     // half rounds to even (1.00)
		{"1.015", "1.02"},  // half rounds to even (1.02)
		{"1.025", "1.02"},  // half rounds to even
		{"1.0251", "1.03"}, // above half rounds up
		{"2.675", "2.68"},  // classic float trap, exact here
		{"-1.005", "-1"},
		{"100", "100"},
	}

	for _, tc := range cases {
		got := Round(MustParse(tc.in))
		assert.True(t, got.Equal(MustParse(tc.want)),
			"Round(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestPercentOf_Unrounded(t *testing.T) {
	// 33.33 * 7 / 100 = 2.3331 - no premature rounding
	got := PercentOf(MustParse("33.33"), MustParse("7"))
	assert.True(t, got.Equal(MustParse("2.3331")), "got %s", got)

	// rounding only at the final step
	assert.True(t, Round(got).Equal(MustParse("2.33")))
}

func TestClampZero(t *testing.T) {
	assert.True(t, ClampZero(MustParse("-0.01")).IsZero())
	assert.True(t, ClampZero(Zero()).IsZero())
	assert.True(t, ClampZero(MustParse("12.50")).Equal(MustParse("12.50")))
}

func TestIsValidPercent(t *testing.T) {
	assert.True(t, IsValidPercent(Zero()))
	assert.True(t, IsValidPercent(MustParse("100")))
	assert.False(t, IsValidPercent(MustParse("100.01")))
	assert.False(t, IsValidPercent(MustParse("-1")))
}
