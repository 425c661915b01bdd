package grouping

import (
	"fmt"
	"strconv"
)

// ExtractNumber returns the first run of decimal digits in v as an int.
// v may be nil, a number, a string or anything printable; values
// without digits give 0.
//
//	ExtractNumber("3/10") == 3
//	ExtractNumber("#07")  == 7
//	ExtractNumber("N/A")  == 0
//	ExtractNumber(nil)    == 0
func ExtractNumber(v any) int {
	var s string
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		s = t
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}

	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return atoi(s[start:i])
		}
	}
	if start >= 0 {
		return atoi(s[start:])
	}
	return 0
}

func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		// out of range for int
		return 0
	}
	return n
}
