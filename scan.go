package datescan

import (
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Scanner primitives. Each takes the remaining input and returns the
// remainder after the token plus the parsed value, or one of the sentinel
// errors. None of them touch a Parsed record; routing values into the record
// is the interpreter's job.

// number consumes at least min and at most max ASCII decimal digits and
// returns their value. Signs are the caller's business.
func number(s string, min, max int) (string, int64, error) {
	if len(s) < min {
		return s, 0, ErrTooShort
	}
	upto := max
	if len(s) < upto {
		upto = len(s)
	}
	var n int64
	for i := 0; i < upto; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			if i < min {
				return s, 0, ErrInvalid
			}
			return s[i:], n, nil
		}
		d := int64(c - '0')
		if n > (math.MaxInt64-d)/10 {
			return s, 0, ErrOutOfRange
		}
		n = n*10 + d
	}
	return s[upto:], n, nil
}

// char consumes exactly one expected ASCII byte.
func char(s string, b byte) (string, error) {
	if len(s) == 0 {
		return s, ErrTooShort
	}
	if s[0] != b {
		return s, ErrInvalid
	}
	return s[1:], nil
}

// space consumes one or more ASCII space or tab characters, the token
// separators of RFC 2822.
func space(s string) (string, error) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i == 0 {
		if len(s) == 0 {
			return s, ErrTooShort
		}
		return s, ErrInvalid
	}
	return s[i:], nil
}

// trim2822 strips leading ASCII whitespace without requiring any.
func trim2822(s string) string {
	return strings.TrimLeft(s, " \t\r\n")
}

// trim1 strips at most one leading whitespace character. Offsets embedded in
// some formats arrive with a single leading space; two or more must fail.
func trim1(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size > 0 && unicode.IsSpace(r) {
		return s[size:]
	}
	return s
}

// equalsASCIIFold reports whether s equals pattern under ASCII lowercasing
// of s. pattern must already be lowercase.
func equalsASCIIFold(s, pattern string) bool {
	if len(s) != len(pattern) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != pattern[i] {
			return false
		}
	}
	return true
}

// shortMonth0 matches a three-letter month abbreviation case-insensitively
// and returns the zero-based month index.
func shortMonth0(s string) (string, int, error) {
	if len(s) < 3 {
		return s, 0, ErrTooShort
	}
	for i, name := range shortMonthNames {
		if equalsASCIIFold(s[:3], name) {
			return s[3:], i, nil
		}
	}
	return s, 0, ErrInvalid
}

// shortOrLongMonth0 matches a month abbreviation and greedily extends over
// the rest of the full name if the following characters keep matching.
func shortOrLongMonth0(s string) (string, int, error) {
	s, month0, err := shortMonth0(s)
	if err != nil {
		return s, 0, err
	}
	suffix := longMonthSuffixes[month0]
	if len(s) >= len(suffix) && equalsASCIIFold(s[:len(suffix)], suffix) {
		s = s[len(suffix):]
	}
	return s, month0, nil
}

// shortWeekday matches a three-letter weekday abbreviation.
func shortWeekday(s string) (string, time.Weekday, error) {
	if len(s) < 3 {
		return s, 0, ErrTooShort
	}
	for i, name := range shortWeekdayNames {
		if equalsASCIIFold(s[:3], name) {
			return s[3:], time.Weekday(i), nil
		}
	}
	return s, 0, ErrInvalid
}

// shortOrLongWeekday matches a weekday abbreviation, greedily extended to
// the full name.
func shortOrLongWeekday(s string) (string, time.Weekday, error) {
	s, wd, err := shortWeekday(s)
	if err != nil {
		return s, 0, err
	}
	suffix := longWeekdaySuffixes[wd]
	if len(s) >= len(suffix) && equalsASCIIFold(s[:len(suffix)], suffix) {
		s = s[len(suffix):]
	}
	return s, wd, nil
}

// nanoScale[n] converts an n-digit fraction numerator to nanoseconds.
var nanoScale = [10]int64{0, 100_000_000, 10_000_000, 1_000_000, 100_000, 10_000, 1_000, 100, 10, 1}

// nanosecond consumes up to nine fractional-second digits, right-padding to
// nanoseconds. Digits past the ninth are consumed and dropped: truncation,
// never rounding.
func nanosecond(s string) (string, int64, error) {
	origlen := len(s)
	s, v, err := number(s, 1, 9)
	if err != nil {
		return s, 0, err
	}
	consumed := origlen - len(s)
	v *= nanoScale[consumed]
	s = strings.TrimLeft(s, "0123456789")
	return s, v, nil
}

// nanosecondFixed consumes exactly digits fractional-second digits.
func nanosecondFixed(s string, digits int) (string, int64, error) {
	s, v, err := number(s, digits, digits)
	if err != nil {
		return s, 0, err
	}
	return s, v * nanoScale[digits], nil
}

// colonPolicy consumes (or refuses) the separator between offset hours and
// minutes. Each offset dialect wires its own.
type colonPolicy func(string) (string, error)

// consumeColonMaybe consumes a single colon if present.
func consumeColonMaybe(s string) (string, error) {
	if strings.HasPrefix(s, ":") {
		return s[1:], nil
	}
	return s, nil
}

// colonMandatory requires a single colon.
func colonMandatory(s string) (string, error) {
	return char(s, ':')
}

// digitPair peeks at the next two bytes.
func digitPair(s string) (byte, byte, error) {
	if len(s) < 2 {
		return 0, 0, ErrTooShort
	}
	return s[0], s[1], nil
}

// timezoneOffset parses [+-]HH<sep>MM into seconds east of UTC.
func timezoneOffset(s string, colon colonPolicy) (string, int, error) {
	return timezoneOffsetInternal(s, colon, false)
}

func timezoneOffsetInternal(s string, colon colonPolicy, allowMissingMinutes bool) (string, int, error) {
	if len(s) == 0 {
		return s, 0, ErrTooShort
	}
	var negative bool
	switch s[0] {
	case '+':
	case '-':
		negative = true
	default:
		return s, 0, ErrInvalid
	}
	s = s[1:]

	// hours (00--99)
	h1, h2, err := digitPair(s)
	if err != nil {
		return s, 0, err
	}
	if !isDigit(h1) || !isDigit(h2) {
		return s, 0, ErrInvalid
	}
	hours := int(h1-'0')*10 + int(h2-'0')
	s = s[2:]

	s, err = colon(s)
	if err != nil {
		return s, 0, err
	}

	// minutes (00--59); may be absent entirely for permissive dialects
	var minutes int
	m1, m2, err := digitPair(s)
	switch {
	case err == nil && m1 >= '0' && m1 <= '5' && isDigit(m2):
		minutes = int(m1-'0')*10 + int(m2-'0')
	case err == nil && m1 >= '6' && m1 <= '9' && isDigit(m2):
		return s, 0, ErrOutOfRange
	case err == nil:
		return s, 0, ErrInvalid
	case allowMissingMinutes:
		minutes = 0
	default:
		return s, 0, ErrTooShort
	}
	switch {
	case len(s) >= 2:
		s = s[2:]
	case len(s) == 0:
	default:
		return s, 0, ErrTooShort
	}

	seconds := hours*3600 + minutes*60
	if negative {
		seconds = -seconds
	}
	return s, seconds, nil
}

// timezoneOffsetZulu is timezoneOffset plus a bare Z/z meaning UTC.
func timezoneOffsetZulu(s string, colon colonPolicy) (string, int, error) {
	if len(s) > 0 && (s[0] == 'z' || s[0] == 'Z') {
		return s[1:], 0, nil
	}
	return timezoneOffset(s, colon)
}

// timezoneOffsetPermissive additionally accepts a bare [+-]HH.
func timezoneOffsetPermissive(s string, colon colonPolicy) (string, int, error) {
	if len(s) > 0 && (s[0] == 'z' || s[0] == 'Z') {
		return s[1:], 0, nil
	}
	return timezoneOffsetInternal(s, colon, true)
}

// timezoneOffset2822 parses an RFC 2822 zone: a signed 4-digit offset or a
// legacy named zone. Unknown multi-letter names (and the unassigned military
// "J") are consumed with no offset at all, per the RFC's obsolete-zone rule;
// every other single letter means +0000.
func timezoneOffset2822(s string) (string, int, bool, error) {
	upto := 0
	for upto < len(s) && isAlpha(s[upto]) {
		upto++
	}
	if upto == 0 {
		rest, offset, err := timezoneOffset(s, func(s string) (string, error) { return s, nil })
		if err != nil {
			return rest, 0, false, err
		}
		return rest, offset, true, nil
	}
	name := s[:upto]
	s = s[upto:]
	hours := func(h int) (string, int, bool, error) { return s, h * 3600, true, nil }
	switch {
	case equalsASCIIFold(name, "gmt"), equalsASCIIFold(name, "ut"), equalsASCIIFold(name, "z"):
		return hours(0)
	case equalsASCIIFold(name, "edt"):
		return hours(-4)
	case equalsASCIIFold(name, "est"), equalsASCIIFold(name, "cdt"):
		return hours(-5)
	case equalsASCIIFold(name, "cst"), equalsASCIIFold(name, "mdt"):
		return hours(-6)
	case equalsASCIIFold(name, "mst"), equalsASCIIFold(name, "pdt"):
		return hours(-7)
	case equalsASCIIFold(name, "pst"):
		return hours(-8)
	case len(name) == 1 && name != "j" && name != "J":
		return hours(0)
	}
	return s, 0, false, nil
}

// timezoneNameSkip consumes a contiguous non-whitespace run and discards it.
func timezoneNameSkip(s string) (string, error) {
	return strings.TrimLeftFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }), nil
}

// comment2822 consumes one RFC 2822 parenthesized comment, including nested
// parentheses and backslash escapes, preceded by optional folding whitespace.
func comment2822(s string) (string, error) {
	s = trim2822(s)
	depth := 0
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case depth == 0:
			if c != '(' {
				return s, ErrInvalid
			}
			depth = 1
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return s[i+1:], nil
			}
		}
	}
	return s, ErrTooShort
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isAlpha(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
