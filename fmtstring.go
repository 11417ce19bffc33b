package packio

import (
	"fmt"
	"strconv"
)

// fmtStringSize bounds the conversion specification a TextStream can build.
// Width and precision are small decimal numbers, so 16 bytes is generous.
const fmtStringSize = 16

// renderSize bounds the stack buffer a single rendered value goes through
// before entering the stream's write path.
const renderSize = 64

// fmtString appends a printf-style conversion specification to dst and
// returns the extended slice. dst comes from a fixed stack array sized by
// fmtStringSize, the function itself never allocates.
//
// The specification is built as '%', '-' for left justification, the field
// width if nonzero, '.' and the precision for non-integer conversions, then
// the verb. For integers a base of 16 or 8 replaces the verb with 'X' or 'o'
// (hexadecimal output is always uppercase), and for floats the Scientific
// flag replaces it with 'E'.
func fmtString(dst []byte, verb byte, integer bool, width, precision int, flags FmtFlag, base int) []byte {
	dst = append(dst, '%')
	if flags&Left != 0 {
		dst = append(dst, '-')
	}
	if width != 0 {
		dst = strconv.AppendUint(dst, uint64(width), 10)
	}
	if !integer {
		dst = append(dst, '.')
		dst = strconv.AppendUint(dst, uint64(precision), 10)
	}
	dst = append(dst, verb)

	if integer {
		switch base {
		case 16:
			dst[len(dst)-1] = 'X'
		case 8:
			dst[len(dst)-1] = 'o'
		}
	} else if flags&Scientific != 0 {
		dst[len(dst)-1] = 'E'
	}

	return dst
}

// snprintf renders format with args into dst, truncating at len(dst), and
// returns the length the full rendering needed. A return value >= len(dst)
// means the output was truncated.
func snprintf(dst []byte, format string, args ...interface{}) int {
	s := fmt.Sprintf(format, args...)
	copy(dst, s)
	return len(s)
}
