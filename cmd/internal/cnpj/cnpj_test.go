package cnpj

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"formatted", "11.222.333/0001-81", "11222333000181"},
		{"digits only", "11222333000181", "11222333000181"},
		{"letters between digits", "11a22b333", "1122333"},
		{"truncates beyond fourteen", "111.222.333/0001-812345", "11122233300018"},
		{"empty", "", ""},
		{"no digits at all", "abc-def", ""},
		{"whitespace and symbols", " 11 222 333 / 0001 - 81 ", "11222333000181"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Canonical(tc.input))
		})
	}
}

func TestDisplay(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"two digits", "12", "12"},
		{"three digits", "123", "12.3"},
		{"five digits", "12345", "12.345"},
		{"eight digits", "12345678", "12.345.678"},
		{"nine digits", "123456789", "12.345.678/9"},
		{"twelve digits", "123456780001", "12.345.678/0001"},
		{"thirteen digits", "1234567800019", "12.345.678/0001-9"},
		{"full", "11222333000181", "11.222.333/0001-81"},
		{"already formatted", "11.222.333/0001-81", "11.222.333/0001-81"},
		{"over-long input truncated first", "112223330001819999", "11.222.333/0001-81"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Display(tc.input))
		})
	}
}

func TestIsValid(t *testing.T) {
	require.True(t, IsValid("11222333000181"))
	require.True(t, IsValid(Canonical("11.222.333/0001-81")))

	require.False(t, IsValid(""))
	require.False(t, IsValid("123"))
	require.False(t, IsValid("1122233300018"))   // 13 digits
	require.False(t, IsValid("112223330001811")) // 15 digits
	require.False(t, IsValid("1122233300018a"))
	require.False(t, IsValid(Canonical("1234567890123A"))) // cleanup leaves 13 digits
}

func TestValidCheckDigits(t *testing.T) {
	require.True(t, ValidCheckDigits("11222333000181"))
	require.True(t, ValidCheckDigits(Canonical("11.444.777/0001-61")))

	require.False(t, ValidCheckDigits("11222333000182"), "wrong second digit")
	require.False(t, ValidCheckDigits("11222333000171"), "wrong first digit")
	require.False(t, ValidCheckDigits("11111111111111"), "repeated digits are never issued")
	require.False(t, ValidCheckDigits("123"), "short input")
	require.False(t, ValidCheckDigits(""))
}
