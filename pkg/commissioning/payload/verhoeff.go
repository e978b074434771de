package payload

import "errors"

var ErrNotDigits = errors.New("payload: input is not a decimal digit string")

var (
	verhoeffD = [10][10]uint8{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
		{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
		{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
		{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
		{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
		{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
		{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
		{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}
	verhoeffP   = [10]uint8{1, 5, 7, 6, 2, 8, 3, 0, 9, 4}
	verhoeffInv = [10]uint8{0, 4, 3, 2, 1, 5, 6, 7, 8, 9}
)

// VerhoeffCompute returns the Verhoeff check character for digits.
func VerhoeffCompute(digits string) (byte, error) {
	if digits == "" {
		return 0, ErrNotDigits
	}
	c := uint8(0)
	for i := len(digits) - 1; i >= 0; i-- {
		ch := digits[i]
		if ch < '0' || ch > '9' {
			return 0, ErrNotDigits
		}
		p := ch - '0'
		for n := len(digits) - i; n > 0; n-- {
			p = verhoeffP[p]
		}
		c = verhoeffD[c][p]
	}
	return '0' + verhoeffInv[c], nil
}

// VerhoeffValidate reports whether the last character of code is its check
// digit.
func VerhoeffValidate(code string) bool {
	if len(code) < 2 {
		return false
	}
	want, err := VerhoeffCompute(code[:len(code)-1])
	return err == nil && code[len(code)-1] == want
}
