package datescan

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// numericSpec is the dispatch table for numeric items: greedy digit width,
// whether an explicit leading sign is honored, and the record setter.
func numericSpec(k Numeric) (width int, signed bool, set func(*Parsed, int64) error) {
	switch k {
	case Year:
		return 4, true, (*Parsed).SetYear
	case YearDiv100:
		return 2, false, (*Parsed).SetYearDiv100
	case YearMod100:
		return 2, false, (*Parsed).SetYearMod100
	case IsoYear:
		return 4, true, (*Parsed).SetIsoYear
	case IsoYearDiv100:
		return 2, false, (*Parsed).SetIsoYearDiv100
	case IsoYearMod100:
		return 2, false, (*Parsed).SetIsoYearMod100
	case Month:
		return 2, false, (*Parsed).SetMonth
	case Day:
		return 2, false, (*Parsed).SetDay
	case WeekFromSun:
		return 2, false, (*Parsed).SetWeekFromSun
	case WeekFromMon:
		return 2, false, (*Parsed).SetWeekFromMon
	case IsoWeek:
		return 2, false, (*Parsed).SetIsoWeek
	case NumDaysFromSun:
		return 1, false, func(p *Parsed, v int64) error {
			if v < 0 || v > 6 {
				return ErrOutOfRange
			}
			return p.SetWeekday(time.Weekday(v))
		}
	case WeekdayFromMon:
		return 1, false, func(p *Parsed, v int64) error {
			if v < 1 || v > 7 {
				return ErrOutOfRange
			}
			return p.SetWeekday(time.Weekday(v % 7))
		}
	case Ordinal:
		return 3, false, (*Parsed).SetOrdinal
	case Hour:
		return 2, false, (*Parsed).SetHour
	case Hour12:
		return 2, false, (*Parsed).SetHour12
	case Minute:
		return 2, false, (*Parsed).SetMinute
	case Second:
		return 2, false, (*Parsed).SetSecond
	case Nanosecond:
		return 9, false, (*Parsed).SetNanosecond
	case Timestamp:
		return math.MaxInt, true, (*Parsed).SetTimestamp
	}
	return 0, false, nil
}

func applyNumeric(p *Parsed, s string, k Numeric) (string, error) {
	width, signed, set := numericSpec(k)
	if set == nil {
		return s, ErrBadFormat
	}
	var v int64
	var err error
	if signed && len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		// an explicit sign lifts the width bound
		negative := s[0] == '-'
		s, v, err = number(s[1:], 1, math.MaxInt)
		if err != nil {
			return s, err
		}
		if negative {
			v = -v
		}
	} else {
		s, v, err = number(s, 1, width)
		if err != nil {
			return s, err
		}
	}
	return s, set(p, v)
}

func applyFixed(p *Parsed, s string, k Fixed) (string, error) {
	switch k {
	case ShortMonthName:
		s, month0, err := shortMonth0(s)
		if err != nil {
			return s, err
		}
		return s, p.SetMonth(int64(month0) + 1)
	case LongMonthName:
		s, month0, err := shortOrLongMonth0(s)
		if err != nil {
			return s, err
		}
		return s, p.SetMonth(int64(month0) + 1)
	case ShortWeekdayName:
		s, wd, err := shortWeekday(s)
		if err != nil {
			return s, err
		}
		return s, p.SetWeekday(wd)
	case LongWeekdayName:
		s, wd, err := shortOrLongWeekday(s)
		if err != nil {
			return s, err
		}
		return s, p.SetWeekday(wd)
	case LowerAmPm, UpperAmPm:
		if len(s) < 2 {
			return s, ErrTooShort
		}
		if s[1]|0x20 != 'm' {
			return s, ErrInvalid
		}
		switch s[0] | 0x20 {
		case 'a':
			return s[2:], p.SetAmPm(false)
		case 'p':
			return s[2:], p.SetAmPm(true)
		}
		return s, ErrInvalid
	case FracSecond, FracSecond3, FracSecond6, FracSecond9:
		// the fraction is optional; absent means untouched
		if !strings.HasPrefix(s, ".") {
			return s, nil
		}
		s, nano, err := nanosecond(s[1:])
		if err != nil {
			return s, err
		}
		return s, p.SetNanosecond(nano)
	case FracSecondNoDot3:
		return applyFracNoDot(p, s, 3)
	case FracSecondNoDot6:
		return applyFracNoDot(p, s, 6)
	case FracSecondNoDot9:
		return applyFracNoDot(p, s, 9)
	case TimezoneName:
		return timezoneNameSkip(s)
	case TimezoneOffset, TimezoneOffsetColon, TimezoneOffsetDoubleColon, TimezoneOffsetTripleColon:
		s, offset, err := timezoneOffset(trim1(s), consumeColonMaybe)
		if err != nil {
			return s, err
		}
		return s, p.SetOffset(int64(offset))
	case TimezoneOffsetZ, TimezoneOffsetColonZ:
		s, offset, err := timezoneOffsetZulu(trim1(s), consumeColonMaybe)
		if err != nil {
			return s, err
		}
		return s, p.SetOffset(int64(offset))
	case TimezoneOffsetPermissive:
		s, offset, err := timezoneOffsetPermissive(trim1(s), consumeColonMaybe)
		if err != nil {
			return s, err
		}
		return s, p.SetOffset(int64(offset))
	case RFC2822:
		return parseRFC2822(p, s)
	case RFC3339:
		return parseRFC3339(p, s)
	}
	return s, ErrBadFormat
}

func applyFracNoDot(p *Parsed, s string, digits int) (string, error) {
	s, nano, err := nanosecondFixed(s, digits)
	if err != nil {
		return s, err
	}
	return s, p.SetNanosecond(nano)
}

func applyItem(p *Parsed, s string, item Item) (string, error) {
	switch item.Kind {
	case ItemLiteral:
		if len(s) < len(item.Text) {
			return s, ErrTooShort
		}
		if !strings.HasPrefix(s, item.Text) {
			return s, ErrInvalid
		}
		return s[len(item.Text):], nil
	case ItemSpace:
		// character-exact: the item spells out precisely which whitespace
		// must appear, and the input's whitespace run must not outlast it
		for _, want := range item.Text {
			got, size := utf8.DecodeRuneInString(s)
			if size == 0 {
				return s, ErrTooShort
			}
			if got != want {
				return s, ErrInvalid
			}
			s = s[size:]
		}
		if next, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(next) {
			return s, ErrTooLong
		}
		return s, nil
	case ItemNumeric:
		return applyNumeric(p, s, item.Num)
	case ItemFixed:
		return applyFixed(p, s, item.Fix)
	}
	return s, ErrBadFormat
}

// parseInternal runs the format program over s, accumulating into p. It
// returns the position reached: all input on success, the leftover slice on
// ErrTooLong, and the slice as it stood before the failing item otherwise.
func parseInternal(p *Parsed, s string, items []Item) (string, error) {
	for _, item := range items {
		rest, err := applyItem(p, s, item)
		if err != nil {
			return s, err
		}
		s = rest
	}
	if len(s) > 0 {
		return s, ErrTooLong
	}
	return s, nil
}

// Parse matches s against the format items in order, accumulating every
// recognized field into p. The whole input must be consumed; leftover input
// after the last item is ErrTooLong. p is only valid for a single parse
// operation.
func Parse(p *Parsed, s string, items []Item) error {
	_, err := parseInternal(p, s, items)
	return err
}

// parseRFC2822 consumes an RFC 2822 date-time from the front of s and
// returns the remainder. Tokens are separated by ASCII space or tab, with
// the RFC's folding whitespace tolerated around the clock separators, and
// any number of trailing parenthesized comments is consumed.
func parseRFC2822(p *Parsed, s string) (string, error) {
	s = trim2822(s)

	// the weekday is optional, but a weekday name without its comma is
	// malformed rather than absent
	if rest, wd, err := shortWeekday(s); err == nil {
		if !strings.HasPrefix(rest, ",") {
			return s, ErrInvalid
		}
		s = trim2822(rest[1:])
		if err := p.SetWeekday(wd); err != nil {
			return s, err
		}
	}

	s, day, err := number(s, 1, 2)
	if err != nil {
		return s, err
	}
	if err := p.SetDay(day); err != nil {
		return s, err
	}
	s, err = space(s)
	if err != nil {
		return s, err
	}
	s, month0, err := shortMonth0(s)
	if err != nil {
		return s, err
	}
	if err := p.SetMonth(int64(month0) + 1); err != nil {
		return s, err
	}
	s, err = space(s)
	if err != nil {
		return s, err
	}

	prevlen := len(s)
	s, year, err := number(s, 2, math.MaxInt)
	if err != nil {
		return s, err
	}
	switch yearlen := prevlen - len(s); {
	case yearlen == 2 && year < 50:
		year += 2000
	case yearlen == 2, yearlen == 3:
		year += 1900
	}
	if err := p.SetYear(year); err != nil {
		return s, err
	}

	s, err = space(s)
	if err != nil {
		return s, err
	}
	s, hour, err := number(s, 2, 2)
	if err != nil {
		return s, err
	}
	if err := p.SetHour(hour); err != nil {
		return s, err
	}
	s, err = char(trim2822(s), ':')
	if err != nil {
		return s, err
	}
	s, minute, err := number(trim2822(s), 2, 2)
	if err != nil {
		return s, err
	}
	if err := p.SetMinute(minute); err != nil {
		return s, err
	}

	// seconds only exist if a colon announces them
	if rest, err := char(trim2822(s), ':'); err == nil {
		rest, sec, err := number(rest, 2, 2)
		if err != nil {
			return rest, err
		}
		if err := p.SetSecond(sec); err != nil {
			return rest, err
		}
		s = rest
	}

	s, err = space(s)
	if err != nil {
		return s, err
	}
	s, offset, known, err := timezoneOffset2822(s)
	if err != nil {
		return s, err
	}
	if known {
		if err := p.SetOffset(int64(offset)); err != nil {
			return s, err
		}
	}

	for {
		rest, err := comment2822(s)
		if err != nil {
			break
		}
		s = rest
	}
	return s, nil
}

// parseRFC3339 consumes an RFC 3339 date-time from the front of s and
// returns the remainder. The grammar is rigid: no whitespace tolerance,
// colons mandatory, and the offset bounded strictly within a day even
// though the record's own bound would already reject a larger value.
func parseRFC3339(p *Parsed, s string) (string, error) {
	s, year, err := number(s, 4, 4)
	if err != nil {
		return s, err
	}
	if err := p.SetYear(year); err != nil {
		return s, err
	}
	s, err = char(s, '-')
	if err != nil {
		return s, err
	}
	s, month, err := number(s, 2, 2)
	if err != nil {
		return s, err
	}
	if err := p.SetMonth(month); err != nil {
		return s, err
	}
	s, err = char(s, '-')
	if err != nil {
		return s, err
	}
	s, day, err := number(s, 2, 2)
	if err != nil {
		return s, err
	}
	if err := p.SetDay(day); err != nil {
		return s, err
	}

	if len(s) == 0 {
		return s, ErrTooShort
	}
	if s[0] != 't' && s[0] != 'T' {
		return s, ErrInvalid
	}
	s = s[1:]

	s, hour, err := number(s, 2, 2)
	if err != nil {
		return s, err
	}
	if err := p.SetHour(hour); err != nil {
		return s, err
	}
	s, err = char(s, ':')
	if err != nil {
		return s, err
	}
	s, minute, err := number(s, 2, 2)
	if err != nil {
		return s, err
	}
	if err := p.SetMinute(minute); err != nil {
		return s, err
	}
	s, err = char(s, ':')
	if err != nil {
		return s, err
	}
	s, sec, err := number(s, 2, 2)
	if err != nil {
		return s, err
	}
	if err := p.SetSecond(sec); err != nil {
		return s, err
	}
	if strings.HasPrefix(s, ".") {
		rest, nano, err := nanosecond(s[1:])
		if err != nil {
			return rest, err
		}
		if err := p.SetNanosecond(nano); err != nil {
			return rest, err
		}
		s = rest
	}

	s, offset, err := timezoneOffsetZulu(s, colonMandatory)
	if err != nil {
		return s, err
	}
	if offset <= -86400 || offset >= 86400 {
		return s, ErrOutOfRange
	}
	return s, p.SetOffset(int64(offset))
}

var rfc2822Items = []Item{Fix(RFC2822)}
var rfc3339Items = []Item{Fix(RFC3339)}

// ParseRFC2822 parses an RFC 2822 date-time string, e.g.
// "Tue, 20 Jan 2015 17:35:20 -0800".
func ParseRFC2822(s string) (time.Time, error) {
	var p Parsed
	if err := Parse(&p, s, rfc2822Items); err != nil {
		return time.Time{}, err
	}
	return p.DateTime()
}

// ParseRFC3339 parses an RFC 3339 date-time string, e.g.
// "2015-01-20T17:35:20.001-08:00".
func ParseRFC3339(s string) (time.Time, error) {
	var p Parsed
	if err := Parse(&p, s, rfc3339Items); err != nil {
		return time.Time{}, err
	}
	return p.DateTime()
}

var dateItems = []Item{
	Num(Year), Lit("-"), Num(Month), Lit("-"), Num(Day),
}

var timeItems = []Item{
	Num(Hour), Lit(":"), Num(Minute), Lit(":"), Num(Second),
	Fix(FracSecond), Fix(TimezoneOffsetZ),
}

// ParseDateTime parses a self-describing date-time string of the shape
// "YYYY-MM-DD<T or space>HH:MM:SS[.frac][offset or Z]".
//
// The date items alone cannot consume the separator and clock, so a
// well-formed input makes the date pass stop with leftover input; that
// leftover-input signal selects the time pass on the remainder. A bare date
// that consumes everything has no clock to offer and cannot finalize.
func ParseDateTime(s string) (time.Time, error) {
	var p Parsed
	rest, err := parseInternal(&p, s, dateItems)
	switch {
	case err == nil:
		return time.Time{}, ErrNotEnough
	case errors.Is(err, ErrTooLong):
		if rest[0] != 'T' && rest[0] != ' ' {
			return time.Time{}, ErrInvalid
		}
		if err := Parse(&p, rest[1:], timeItems); err != nil {
			return time.Time{}, err
		}
	default:
		return time.Time{}, err
	}
	return p.DateTime()
}
