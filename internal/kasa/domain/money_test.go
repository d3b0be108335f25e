package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		cents int64
	}{
		{"12.34", 1234},
		{"12,34", 1234},
		{"12", 1200},
		{"0.01", 1},
		{".5", 50},
		{"12.345", 1235}, // half-up on the third decimal
		{"12.344", 1234},
		{" 7.00 ", 700},
	}
	for _, tc := range cases {
		m, err := ParseAmount(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.cents, m.Cents, tc.in)
	}
}

func TestParseAmountRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "0", "0.00", "-5", "+5", "abc", "1.2.3", "1e3"} {
		_, err := ParseAmount(in)
		require.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestMoneyValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Money{Cents: 1}.Validate())
	require.ErrorIs(t, Money{Cents: 0}.Validate(), ErrInvalidAmount)
	require.ErrorIs(t, Money{Cents: -100}.Validate(), ErrInvalidAmount)
}

func TestMoneyArithmeticAndFormatting(t *testing.T) {
	t.Parallel()

	a := Money{Cents: 11000}
	b := Money{Cents: 4000}

	require.Equal(t, int64(15000), a.Add(b).Cents)
	require.Equal(t, int64(7000), a.Sub(b).Cents)
	require.Equal(t, "110.00", a.String())
	require.Equal(t, "-0.50", Money{Cents: -50}.String())
	require.Equal(t, "0.07", Money{Cents: 7}.String())
}
