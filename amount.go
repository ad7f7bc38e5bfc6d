package atm

import (
	"strconv"
	"strings"
)

// ParseAmount reads the withdrawal amount from the register.
//
// Keys are read in order up to the first Enter and parsed as a base 10 number.
// It returns false for an empty register, a non digit key, or an amount overflowing uint64.
func ParseAmount(keys []Key) (uint64, bool) {
	var digits strings.Builder
	for _, k := range keys {
		if k.IsEnter() {
			break
		}
		if !k.IsDigit() {
			return 0, false
		}
		digits.WriteByte(byte(k))
	}
	amount, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}
