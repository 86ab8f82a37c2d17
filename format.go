// Package datescan parses calendar and time-of-day strings driven by an
// explicit sequence of format items.
//
// A format is a slice of Item values: exact literals, exact whitespace runs,
// numeric fields of a known kind, and named fixed-format fields (month and
// weekday names, AM/PM markers, fractional seconds, timezone offsets in
// several dialects, and the composite RFC 2822 / RFC 3339 formats). Parse
// walks the items over the input, accumulating results into a Parsed record,
// which finalizes into a concrete time.Time via the standard time package.
//
// The parser is greedy (longest prefix that still fits a field's intrinsic
// width), pad-agnostic for numeric fields, and never backtracks: once an item
// has consumed input the consumption is final.
package datescan

import "errors"

// Parse errors. Every failure returned by this package wraps exactly one of
// these sentinels; compare with errors.Is.
var (
	// ErrTooShort means the input ended before the minimum required tokens.
	ErrTooShort = errors.New("premature end of input")
	// ErrTooLong means unconsumed input remained after all items matched.
	ErrTooLong = errors.New("trailing input")
	// ErrInvalid means a token's shape did not match the expected item, or
	// two parsed fields disagree with each other.
	ErrInvalid = errors.New("input contains invalid characters or inconsistent fields")
	// ErrOutOfRange means a syntactically valid token's value violates a
	// semantic bound.
	ErrOutOfRange = errors.New("input is out of range")
	// ErrNotEnough means finalization could not determine a full date or
	// time from the fields that were set.
	ErrNotEnough = errors.New("not enough information to determine date and time")
	// ErrBadFormat means the item sequence itself is malformed.
	ErrBadFormat = errors.New("bad or unsupported format item")
)

// Numeric identifies a decimal integer field of known meaning. Each kind has
// an intrinsic parsing width which bounds how many digits are consumed
// greedily; padding never matters for parsing.
type Numeric int

const (
	// Year is the full Gregorian year, possibly with an explicit sign.
	Year Numeric = iota
	// YearDiv100 is the Gregorian year divided by 100 (the "century").
	YearDiv100
	// YearMod100 is the Gregorian year modulo 100.
	YearMod100
	// IsoYear is the year in the ISO 8601 week date, possibly signed.
	IsoYear
	// IsoYearDiv100 is the ISO week-date year divided by 100.
	IsoYearDiv100
	// IsoYearMod100 is the ISO week-date year modulo 100.
	IsoYearMod100
	// Month is the month number, 1 through 12.
	Month
	// Day is the day of the month, 1 through 31.
	Day
	// WeekFromSun is the week number with week 1 starting at the first
	// Sunday of January, 0 through 53.
	WeekFromSun
	// WeekFromMon is the week number with week 1 starting at the first
	// Monday of January, 0 through 53.
	WeekFromMon
	// IsoWeek is the ISO 8601 week number, 1 through 53.
	IsoWeek
	// NumDaysFromSun is the weekday as a number, 0 = Sunday through
	// 6 = Saturday.
	NumDaysFromSun
	// WeekdayFromMon is the weekday as a number, 1 = Monday through
	// 7 = Sunday.
	WeekdayFromMon
	// Ordinal is the day of the year, 1 through 366.
	Ordinal
	// Hour is the hour on a 24-hour clock, 0 through 23.
	Hour
	// Hour12 is the hour on a 12-hour clock, 1 through 12.
	Hour12
	// Minute is the minute, 0 through 59.
	Minute
	// Second is the second, 0 through 59.
	Second
	// Nanosecond is the sub-second value as a plain 9-digit numerator, not a
	// fraction; use the FracSecond fixed kinds for fractions.
	Nanosecond
	// Timestamp is the number of non-leap seconds since the Unix epoch,
	// width-unbounded.
	Timestamp
)

// Fixed identifies a named fixed-format (non-purely-numeric) field.
type Fixed int

const (
	// ShortMonthName matches a three-letter English month abbreviation,
	// case-insensitively.
	ShortMonthName Fixed = iota
	// LongMonthName matches a month abbreviation and greedily extends over
	// the rest of the full name when it continues to match.
	LongMonthName
	// ShortWeekdayName matches a three-letter English weekday abbreviation.
	ShortWeekdayName
	// LongWeekdayName matches a weekday abbreviation, greedily extended to
	// the full name.
	LongWeekdayName
	// LowerAmPm matches "am"/"pm" in any case.
	LowerAmPm
	// UpperAmPm parses identically to LowerAmPm; the case only matters for
	// formatting, which this package does not do.
	UpperAmPm
	// FracSecond matches an optional dot followed by fractional seconds of
	// any width. Digits past the ninth are consumed and discarded
	// (truncation, never rounding). Absence of the dot matches emptily.
	FracSecond
	// FracSecond3, FracSecond6 and FracSecond9 parse exactly like
	// FracSecond; their widths are formatting hints only.
	FracSecond3
	FracSecond6
	FracSecond9
	// FracSecondNoDot3 matches exactly three fractional-second digits with
	// no leading dot. Likewise for the 6- and 9-digit variants.
	FracSecondNoDot3
	FracSecondNoDot6
	FracSecondNoDot9
	// TimezoneName consumes a contiguous non-whitespace run and discards
	// it. No abbreviation-to-offset lookup is attempted.
	TimezoneName
	// TimezoneOffset matches [+-]HH[:]MM with an optional colon, tolerating
	// exactly one leading whitespace character.
	TimezoneOffset
	// TimezoneOffsetColon, TimezoneOffsetDoubleColon and
	// TimezoneOffsetTripleColon parse identically to TimezoneOffset; the
	// colon counts are formatting hints only.
	TimezoneOffsetColon
	TimezoneOffsetDoubleColon
	TimezoneOffsetTripleColon
	// TimezoneOffsetZ additionally accepts a bare Z or z meaning UTC.
	TimezoneOffsetZ
	// TimezoneOffsetColonZ parses identically to TimezoneOffsetZ.
	TimezoneOffsetColonZ
	// TimezoneOffsetPermissive accepts Z, z, [+-]HH, and [+-]HH[:]MM.
	TimezoneOffsetPermissive
	// RFC2822 consumes an entire RFC 2822 date-time, e.g.
	// "Tue, 20 Jan 2015 17:35:20 -0800 (UTC)".
	RFC2822
	// RFC3339 consumes an entire RFC 3339 date-time, e.g.
	// "2015-01-20T17:35:20.001-08:00".
	RFC3339
)

// Pad is a formatting hint for numeric fields. Parsing ignores it entirely.
type Pad int

const (
	NoPad Pad = iota
	ZeroPad
	SpacePad
)

// ItemKind discriminates the Item union. The zero value is ItemError so that
// a zero Item always fails with ErrBadFormat instead of silently matching.
type ItemKind int

const (
	// ItemError marks a format sequence that could not be produced; parsing
	// it fails with ErrBadFormat.
	ItemError ItemKind = iota
	// ItemLiteral must match the Text exactly, byte for byte.
	ItemLiteral
	// ItemSpace must match the Text exactly, character by character, and
	// the input's whitespace run must end where the Text does; a run that
	// continues past it fails with ErrTooLong.
	ItemSpace
	// ItemNumeric scans a decimal field of kind Num.
	ItemNumeric
	// ItemFixed scans the named fixed-format field Fix.
	ItemFixed
)

// Item is one instruction of a format program. Items are plain data; build
// them with Lit, Sp, Num, NumPad and Fix, or as composite literals.
type Item struct {
	Kind ItemKind
	Text string  // literal or whitespace run, for ItemLiteral/ItemSpace
	Num  Numeric // field kind, for ItemNumeric
	Pad  Pad     // formatting hint, ignored by parsing
	Fix  Fixed   // field kind, for ItemFixed
}

// Lit returns a literal item matching s exactly.
func Lit(s string) Item { return Item{Kind: ItemLiteral, Text: s} }

// Sp returns a whitespace item matching s exactly, character by character.
func Sp(s string) Item { return Item{Kind: ItemSpace, Text: s} }

// Num returns a numeric item of the given kind with no padding hint.
func Num(k Numeric) Item { return Item{Kind: ItemNumeric, Num: k} }

// NumPad returns a numeric item with an explicit padding hint. The hint has
// no effect on parsing.
func NumPad(k Numeric, p Pad) Item { return Item{Kind: ItemNumeric, Num: k, Pad: p} }

// Fix returns a fixed-format item of the given kind.
func Fix(f Fixed) Item { return Item{Kind: ItemFixed, Fix: f} }

var shortMonthNames = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// Remainder of each full month name after the three-letter abbreviation.
var longMonthSuffixes = []string{
	"uary", "ruary", "ch", "il", "", "e",
	"y", "ust", "tember", "ober", "ember", "ember",
}

// Indexed by time.Weekday, Sunday first.
var shortWeekdayNames = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

var longWeekdaySuffixes = []string{"day", "day", "sday", "nesday", "rsday", "day", "urday"}
