// Package cnpj normalizes and validates Brazilian company registry numbers.
package cnpj

import "strings"

// Length is the digit count of a canonical CNPJ.
const Length = 14

// Canonical strips every non-digit character from text and keeps at most
// the first Length digits. Over-long input is truncated, never rejected;
// rejection is IsValid's job.
func Canonical(text string) string {
	digits := make([]byte, 0, Length)
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch < '0' || ch > '9' {
			continue
		}
		digits = append(digits, ch)
		if len(digits) == Length {
			break
		}
	}
	return string(digits)
}

// Display renders text in the NN.NNN.NNN/NNNN-NN grouping. Partial input
// renders a partial group: each separator is only inserted once a digit
// follows it, so 5 digits give "12.345" and 9 give "12.345.678/9".
func Display(text string) string {
	canonical := Canonical(text)

	var b strings.Builder
	b.Grow(Length + 4)
	for i := 0; i < len(canonical); i++ {
		switch i {
		case 2, 5:
			b.WriteByte('.')
		case 8:
			b.WriteByte('/')
		case 12:
			b.WriteByte('-')
		}
		b.WriteByte(canonical[i])
	}
	return b.String()
}

// IsValid reports whether canonical is a well-formed identifier: exactly
// Length ASCII digits. This is the only gate before a registry call.
func IsValid(canonical string) bool {
	if len(canonical) != Length {
		return false
	}
	for i := 0; i < len(canonical); i++ {
		if canonical[i] < '0' || canonical[i] > '9' {
			return false
		}
	}
	return true
}

// ValidCheckDigits verifies the two RFB mod-11 verifier digits. Advisory
// only: a failing identifier is still submitted to the registry, which
// remains the authority on whether the number exists.
func ValidCheckDigits(canonical string) bool {
	if !IsValid(canonical) {
		return false
	}

	// Repeated-digit sequences satisfy the mod-11 math but are never issued.
	if hasAllSameDigits(canonical) {
		return false
	}

	// RFB weights for the first verifying digit
	weights1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	// RFB weights for the second verifying digit
	weights2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

	digit1 := checkDigit(canonical[:12], weights1)
	digit2 := checkDigit(canonical[:13], weights2)

	return digit1 == int(canonical[12]-'0') && digit2 == int(canonical[13]-'0')
}

func hasAllSameDigits(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func checkDigit(base string, weights []int) int {
	sum := 0
	for i, weight := range weights {
		digit := int(base[i] - '0')
		sum += digit * weight
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}
