package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestConvertViaBaseCurrency(t *testing.T) {
	rates := DefaultRates()

	got, err := Convert(decimal.NewFromInt(1000), "NRS", "USD", rates)
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("7.50")), "got %s", got)

	got, err = Convert(decimal.NewFromInt(100), "USD", "NRS", rates)
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString("13333.33")), "got %s", got)

	got, err = Convert(decimal.NewFromInt(1000), "NRS", "INR", rates)
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(625)), "got %s", got)
}

func TestConvertIdentityReturnsInputUnchanged(t *testing.T) {
	rates := DefaultRates()

	for _, raw := range []string{"0", "1234.567", "99.999", "0.005"} {
		amount := decimal.RequireFromString(raw)
		got, err := Convert(amount, "NRS", "NRS", rates)
		require.NoError(t, err)
		// No rounding pass on identity conversion.
		require.True(t, got.Equal(amount), "got %s, want %s", got, amount)
	}
}

func TestConvertZeroAmount(t *testing.T) {
	got, err := Convert(decimal.Zero, "USD", "NRS", DefaultRates())
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.Zero))
	require.Equal(t, "0.00", got.StringFixed(2))
}

func TestConvertUnsupportedCurrency(t *testing.T) {
	rates := DefaultRates()

	_, err := Convert(decimal.NewFromInt(10), "GBP", "USD", rates)
	require.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = Convert(decimal.NewFromInt(10), "USD", "GBP", rates)
	require.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = Convert(decimal.NewFromInt(10), "GBP", "GBP", rates)
	require.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestConvertRoundsHalfUp(t *testing.T) {
	rates := RateTable{
		"NRS": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("0.005"),
	}

	// 1 NRS -> 0.005 USD rounds up to 0.01.
	got, err := Convert(decimal.NewFromInt(1), "NRS", "USD", rates)
	require.NoError(t, err)
	require.Equal(t, "0.01", got.StringFixed(2))
}

func TestSumConvertedRoundsPerLine(t *testing.T) {
	rates := DefaultRates()

	lines := []Line{
		{Amount: decimal.NewFromInt(1000), Currency: "NRS"},
		{Amount: decimal.NewFromInt(100), Currency: "USD"},
	}

	total, err := SumConverted(lines, "USD", rates)
	require.NoError(t, err)

	first, err := Convert(decimal.NewFromInt(1000), "NRS", "USD", rates)
	require.NoError(t, err)
	second, err := Convert(decimal.NewFromInt(100), "USD", "USD", rates)
	require.NoError(t, err)
	require.True(t, total.Equal(first.Add(second)), "got %s", total)
	require.Equal(t, "107.50", total.StringFixed(2))
}

func TestSymbolAndName(t *testing.T) {
	require.Equal(t, "$", Symbol("usd"))
	require.Equal(t, "US Dollar", Name("USD"))
	require.Equal(t, "GBP", Symbol("GBP"))
	require.Equal(t, "GBP", Name("GBP"))
}
