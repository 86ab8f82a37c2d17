package datescan

import (
	"errors"
	"math"
	"time"
)

// Year span this package can resolve a date within. The standard time
// package imposes no span of its own, so the bound lives here.
const (
	MinYear = -262144
	MaxYear = 262143
)

// Parsed accumulates optionally-set calendar, time-of-day and offset fields
// during a parse. A nil field is unset. Use one Parsed per parse operation;
// a single record may accumulate across sequential item sequences within one
// logical parse, but never across independent parses.
//
// Setters are idempotent when re-setting the same value, fail with
// ErrInvalid on a conflicting re-set, and range-check their argument with
// ErrOutOfRange before acceptance. Finalizers (Date, TimeOfDay, Zone,
// DateTime) cross-validate whatever subset of fields was set.
type Parsed struct {
	// Year is the full Gregorian year; may be negative.
	Year *int
	// YearDiv100 and YearMod100 are the two-digit halves of the year.
	// When only YearMod100 is set the century is inferred: 70..99 is the
	// 1900s, 0..69 the 2000s.
	YearDiv100 *int
	YearMod100 *int
	// IsoYear and its halves mirror the Year fields for the ISO week date.
	IsoYear       *int
	IsoYearDiv100 *int
	IsoYearMod100 *int
	// Month is 1 through 12.
	Month *int
	// WeekFromSun and WeekFromMon are week numbers with week 1 starting at
	// the first Sunday (resp. Monday) of January.
	WeekFromSun *int
	WeekFromMon *int
	// IsoWeek is the ISO 8601 week number.
	IsoWeek *int
	// Weekday is the day of the week.
	Weekday *time.Weekday
	// Ordinal is the day of the year, 1 through 366.
	Ordinal *int
	// Day is the day of the month, 1 through 31.
	Day *int
	// HourDiv12 is 0 for AM hours, 1 for PM hours. HourMod12 is the hour
	// modulo 12. A 24-hour value sets both halves; a 12-hour value plus an
	// AM/PM marker sets one half each.
	HourDiv12 *int
	HourMod12 *int
	// Minute is 0 through 59.
	Minute *int
	// Second is 0 through 59. The leap-second allowance lives in
	// Nanosecond, not here.
	Second *int
	// Nanosecond is 0 through 1_999_999_999; values of 1e9 and above
	// represent a leap second.
	Nanosecond *int
	// Timestamp is non-leap seconds since the Unix epoch.
	Timestamp *int64
	// Offset is seconds east of UTC, within ±1 day exclusive.
	Offset *int
}

func setIfConsistent[T comparable](old **T, v T) error {
	if *old != nil {
		if **old == v {
			return nil
		}
		return ErrInvalid
	}
	*old = &v
	return nil
}

// SetYear sets the full Gregorian year.
func (p *Parsed) SetYear(v int64) error {
	if v < MinYear || v > MaxYear {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Year, int(v))
}

// SetYearDiv100 sets the century half of a split year.
func (p *Parsed) SetYearDiv100(v int64) error {
	if v < 0 || v > 99 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.YearDiv100, int(v))
}

// SetYearMod100 sets the two-digit half of a split year.
func (p *Parsed) SetYearMod100(v int64) error {
	if v < 0 || v > 99 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.YearMod100, int(v))
}

// SetIsoYear sets the ISO week-date year.
func (p *Parsed) SetIsoYear(v int64) error {
	if v < MinYear || v > MaxYear {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.IsoYear, int(v))
}

// SetIsoYearDiv100 sets the century half of a split ISO year.
func (p *Parsed) SetIsoYearDiv100(v int64) error {
	if v < 0 || v > 99 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.IsoYearDiv100, int(v))
}

// SetIsoYearMod100 sets the two-digit half of a split ISO year.
func (p *Parsed) SetIsoYearMod100(v int64) error {
	if v < 0 || v > 99 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.IsoYearMod100, int(v))
}

// SetMonth sets the month, 1 through 12.
func (p *Parsed) SetMonth(v int64) error {
	if v < 1 || v > 12 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Month, int(v))
}

// SetWeekFromSun sets the Sunday-based week number, 0 through 53.
func (p *Parsed) SetWeekFromSun(v int64) error {
	if v < 0 || v > 53 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.WeekFromSun, int(v))
}

// SetWeekFromMon sets the Monday-based week number, 0 through 53.
func (p *Parsed) SetWeekFromMon(v int64) error {
	if v < 0 || v > 53 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.WeekFromMon, int(v))
}

// SetIsoWeek sets the ISO week number, 0 through 53.
func (p *Parsed) SetIsoWeek(v int64) error {
	if v < 0 || v > 53 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.IsoWeek, int(v))
}

// SetWeekday sets the day of the week.
func (p *Parsed) SetWeekday(v time.Weekday) error {
	if v < time.Sunday || v > time.Saturday {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Weekday, v)
}

// SetOrdinal sets the day of the year, 1 through 366.
func (p *Parsed) SetOrdinal(v int64) error {
	if v < 1 || v > 366 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Ordinal, int(v))
}

// SetDay sets the day of the month, 1 through 31. Whether the day exists in
// the resolved month is checked at finalization.
func (p *Parsed) SetDay(v int64) error {
	if v < 1 || v > 31 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Day, int(v))
}

// SetAmPm sets the AM/PM half of the hour; pm is true for PM. Legal only in
// combination with a 12-hour value, or a 24-hour value that agrees.
func (p *Parsed) SetAmPm(pm bool) error {
	v := 0
	if pm {
		v = 1
	}
	return setIfConsistent(&p.HourDiv12, v)
}

// SetHour12 sets the hour on a 12-hour clock, 1 through 12.
func (p *Parsed) SetHour12(v int64) error {
	if v < 1 || v > 12 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.HourMod12, int(v%12))
}

// SetHour sets the hour on a 24-hour clock, 0 through 23, filling both
// hour halves.
func (p *Parsed) SetHour(v int64) error {
	if v < 0 || v > 23 {
		return ErrOutOfRange
	}
	if err := setIfConsistent(&p.HourDiv12, int(v/12)); err != nil {
		return err
	}
	return setIfConsistent(&p.HourMod12, int(v%12))
}

// SetMinute sets the minute, 0 through 59.
func (p *Parsed) SetMinute(v int64) error {
	if v < 0 || v > 59 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Minute, int(v))
}

// SetSecond sets the second, 0 through 59. A literal 60 is rejected; leap
// seconds are represented through SetNanosecond.
func (p *Parsed) SetSecond(v int64) error {
	if v < 0 || v > 59 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Second, int(v))
}

// SetNanosecond sets the sub-second value, 0 through 1_999_999_999.
func (p *Parsed) SetNanosecond(v int64) error {
	if v < 0 || v > 1_999_999_999 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Nanosecond, int(v))
}

// SetTimestamp sets the Unix timestamp in seconds.
func (p *Parsed) SetTimestamp(v int64) error {
	return setIfConsistent(&p.Timestamp, v)
}

// SetOffset sets the UTC offset in seconds, within ±1 day exclusive.
func (p *Parsed) SetOffset(v int64) error {
	if v <= -86400 || v >= 86400 {
		return ErrOutOfRange
	}
	return setIfConsistent(&p.Offset, int(v))
}

// resolveYear reconciles a full year with its optional div-100/mod-100
// halves, or reconstructs the year from the halves alone.
func resolveYear(y, q, r *int) (*int, error) {
	switch {
	case q == nil && r == nil:
		return y, nil
	case y != nil:
		if *y < 0 {
			return nil, ErrOutOfRange
		}
		if q != nil && *q != *y/100 {
			return nil, ErrInvalid
		}
		if r != nil && *r != *y%100 {
			return nil, ErrInvalid
		}
		return y, nil
	case q != nil && r != nil:
		v := *q*100 + *r
		return &v, nil
	case r != nil:
		v := *r
		if v < 70 {
			v += 2000
		} else {
			v += 1900
		}
		return &v, nil
	default:
		return nil, ErrNotEnough
	}
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(y, m int) int {
	if m == 2 && isLeapYear(y) {
		return 29
	}
	return monthDays[m]
}

func daysInYear(y int) int {
	if isLeapYear(y) {
		return 366
	}
	return 365
}

// makeDate validates a calendar date and returns it at midnight UTC.
func makeDate(y, m, d int) (time.Time, error) {
	if y < MinYear || y > MaxYear || m < 1 || m > 12 || d < 1 || d > daysInMonth(y, m) {
		return time.Time{}, ErrOutOfRange
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

// dateFromOrdinal validates a year/day-of-year pair.
func dateFromOrdinal(y, ord int) (time.Time, error) {
	if y < MinYear || y > MaxYear || ord < 1 || ord > daysInYear(y) {
		return time.Time{}, ErrOutOfRange
	}
	return time.Date(y, time.January, ord, 0, 0, 0, 0, time.UTC), nil
}

// daysSince is the number of days from the start-of-week day to wd, 0..6.
func daysSince(wd, start time.Weekday) int {
	return (int(wd) - int(start) + 7) % 7
}

// weeksFrom numbers the week of d counting week 1 from the first start-of-
// week day of January.
func weeksFrom(d time.Time, start time.Weekday) int {
	return (d.YearDay() - daysSince(d.Weekday(), start) + 6) / 7
}

// dateFromISOWeek resolves an ISO week date, rejecting week numbers that do
// not exist in the given ISO year.
func dateFromISOWeek(isoyear, week int, wd time.Weekday) (time.Time, error) {
	jan4, err := makeDate(isoyear, 1, 4)
	if err != nil {
		return time.Time{}, err
	}
	week1Mon := jan4.AddDate(0, 0, -daysSince(jan4.Weekday(), time.Monday))
	d := week1Mon.AddDate(0, 0, (week-1)*7+daysSince(wd, time.Monday))
	gotYear, gotWeek := d.ISOWeek()
	if gotYear != isoyear || gotWeek != week {
		return time.Time{}, ErrOutOfRange
	}
	return d, nil
}

// Date resolves the set fields into a calendar date at midnight UTC.
//
// The date is determined from the first of these complete groups: year,
// month and day; year and ordinal; year, Sunday- or Monday-based week and
// weekday; ISO year, ISO week and weekday. Split year halves substitute for
// a full year, with the century inferred from a lone two-digit year. Every
// other set field is then cross-verified against the resolved date.
func (p *Parsed) Date() (time.Time, error) {
	year, err := resolveYear(p.Year, p.YearDiv100, p.YearMod100)
	if err != nil {
		return time.Time{}, err
	}
	isoyear, err := resolveYear(p.IsoYear, p.IsoYearDiv100, p.IsoYearMod100)
	if err != nil {
		return time.Time{}, err
	}

	verifyYMD := func(d time.Time) bool {
		y, m, day := d.Date()
		if p.Year != nil && *p.Year != y {
			return false
		}
		if y >= 0 {
			if p.YearDiv100 != nil && *p.YearDiv100 != y/100 {
				return false
			}
			if p.YearMod100 != nil && *p.YearMod100 != y%100 {
				return false
			}
		} else if p.YearDiv100 != nil || p.YearMod100 != nil {
			return false
		}
		if p.Month != nil && *p.Month != int(m) {
			return false
		}
		if p.Day != nil && *p.Day != day {
			return false
		}
		return true
	}
	verifyISOWeekDate := func(d time.Time) bool {
		isoY, isoW := d.ISOWeek()
		if p.IsoYear != nil && *p.IsoYear != isoY {
			return false
		}
		if isoY >= 0 {
			if p.IsoYearDiv100 != nil && *p.IsoYearDiv100 != isoY/100 {
				return false
			}
			if p.IsoYearMod100 != nil && *p.IsoYearMod100 != isoY%100 {
				return false
			}
		} else if p.IsoYearDiv100 != nil || p.IsoYearMod100 != nil {
			return false
		}
		if p.IsoWeek != nil && *p.IsoWeek != isoW {
			return false
		}
		if p.Weekday != nil && *p.Weekday != d.Weekday() {
			return false
		}
		return true
	}
	verifyOrdinal := func(d time.Time) bool {
		if p.Ordinal != nil && *p.Ordinal != d.YearDay() {
			return false
		}
		if p.WeekFromSun != nil && *p.WeekFromSun != weeksFrom(d, time.Sunday) {
			return false
		}
		if p.WeekFromMon != nil && *p.WeekFromMon != weeksFrom(d, time.Monday) {
			return false
		}
		return true
	}

	// Week-number resolution needs the day count preceding week 1.
	weekOneOffset := func(y int, start time.Weekday) (int, error) {
		newyear, err := makeDate(y, 1, 1)
		if err != nil {
			return 0, err
		}
		return (7 - daysSince(newyear.Weekday(), start)) % 7, nil
	}
	fromWeekNumber := func(y, week int, start time.Weekday) (time.Time, error) {
		first, err := weekOneOffset(y, start)
		if err != nil {
			return time.Time{}, err
		}
		newyear, _ := makeDate(y, 1, 1)
		d := newyear.AddDate(0, 0, first+(week-1)*7+daysSince(*p.Weekday, start))
		if d.Year() != y {
			return time.Time{}, ErrOutOfRange
		}
		return d, nil
	}

	var date time.Time
	var verified bool
	switch {
	case year != nil && p.Month != nil && p.Day != nil:
		date, err = makeDate(*year, *p.Month, *p.Day)
		if err != nil {
			return time.Time{}, err
		}
		verified = verifyISOWeekDate(date) && verifyOrdinal(date)
	case year != nil && p.Ordinal != nil:
		date, err = dateFromOrdinal(*year, *p.Ordinal)
		if err != nil {
			return time.Time{}, err
		}
		verified = verifyYMD(date) && verifyISOWeekDate(date) && verifyOrdinal(date)
	case year != nil && p.WeekFromSun != nil && p.Weekday != nil:
		date, err = fromWeekNumber(*year, *p.WeekFromSun, time.Sunday)
		if err != nil {
			return time.Time{}, err
		}
		verified = verifyYMD(date) && verifyISOWeekDate(date) && verifyOrdinal(date)
	case year != nil && p.WeekFromMon != nil && p.Weekday != nil:
		date, err = fromWeekNumber(*year, *p.WeekFromMon, time.Monday)
		if err != nil {
			return time.Time{}, err
		}
		verified = verifyYMD(date) && verifyISOWeekDate(date) && verifyOrdinal(date)
	case isoyear != nil && p.IsoWeek != nil && p.Weekday != nil:
		date, err = dateFromISOWeek(*isoyear, *p.IsoWeek, *p.Weekday)
		if err != nil {
			return time.Time{}, err
		}
		verified = verifyYMD(date) && verifyOrdinal(date)
	default:
		return time.Time{}, ErrNotEnough
	}
	if !verified {
		return time.Time{}, ErrInvalid
	}
	return date, nil
}

// clock resolves the time-of-day fields. Second defaults to zero; a
// nanosecond without an explicit second is underdetermined.
func (p *Parsed) clock() (hour, minute, sec, nano int, err error) {
	if p.HourDiv12 == nil || p.HourMod12 == nil || p.Minute == nil {
		return 0, 0, 0, 0, ErrNotEnough
	}
	hour = *p.HourDiv12*12 + *p.HourMod12
	minute = *p.Minute
	if p.Second != nil {
		sec = *p.Second
	}
	if p.Nanosecond != nil {
		if p.Second == nil {
			return 0, 0, 0, 0, ErrNotEnough
		}
		nano = *p.Nanosecond
	}
	return hour, minute, sec, nano, nil
}

// TimeOfDay resolves the time-of-day fields into an offset from midnight.
// A leap second surfaces as a duration reaching past 23:59:59.
func (p *Parsed) TimeOfDay() (time.Duration, error) {
	hour, minute, sec, nano, err := p.clock()
	if err != nil {
		return 0, err
	}
	return time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(nano)*time.Nanosecond, nil
}

// Zone returns the fixed time zone described by the offset field.
func (p *Parsed) Zone() (*time.Location, error) {
	if p.Offset == nil {
		return nil, ErrNotEnough
	}
	return time.FixedZone("", *p.Offset), nil
}

// naive is a resolved wall-clock date and time with no zone attached.
type naive struct {
	date                    time.Time // midnight UTC
	hour, minute, sec, nano int
}

// unix is the epoch seconds of the wall clock read as UTC, ignoring any
// leap-second nanosecond carry.
func (n naive) unix() int64 {
	return n.date.Unix() + int64(n.hour)*3600 + int64(n.minute)*60 + int64(n.sec)
}

// naiveDateTime resolves a full wall-clock date and time assuming the given
// UTC offset. The timestamp field is authoritative when the calendar fields
// are underdetermined, and cross-checked against them when both resolve.
func (p *Parsed) naiveDateTime(offset int) (naive, error) {
	date, derr := p.Date()
	hour, minute, sec, nano, terr := p.clock()
	if derr == nil && terr == nil {
		n := naive{date, hour, minute, sec, nano}
		ts := n.unix() - int64(offset)
		if p.Timestamp != nil {
			if *p.Timestamp != ts && !(nano >= 1_000_000_000 && *p.Timestamp == ts+1) {
				return naive{}, ErrInvalid
			}
		}
		return n, nil
	}
	if p.Timestamp != nil {
		for _, e := range []error{derr, terr} {
			if errors.Is(e, ErrOutOfRange) {
				return naive{}, ErrOutOfRange
			}
			if errors.Is(e, ErrInvalid) {
				return naive{}, ErrInvalid
			}
		}
		ts := *p.Timestamp
		if (offset > 0 && ts > math.MaxInt64-int64(offset)) ||
			(offset < 0 && ts < math.MinInt64-int64(offset)) {
			return naive{}, ErrOutOfRange
		}
		dt := time.Unix(ts+int64(offset), 0).UTC()
		q := *p
		if err := q.SetSecond(int64(dt.Second())); err != nil {
			return naive{}, err
		}
		if err := q.SetYear(int64(dt.Year())); err != nil {
			return naive{}, err
		}
		if err := q.SetOrdinal(int64(dt.YearDay())); err != nil {
			return naive{}, err
		}
		if err := q.SetHour(int64(dt.Hour())); err != nil {
			return naive{}, err
		}
		if err := q.SetMinute(int64(dt.Minute())); err != nil {
			return naive{}, err
		}
		date, err := q.Date()
		if err != nil {
			return naive{}, err
		}
		hour, minute, sec, nano, err := q.clock()
		if err != nil {
			return naive{}, err
		}
		return naive{date, hour, minute, sec, nano}, nil
	}
	if derr != nil {
		return naive{}, derr
	}
	return naive{}, terr
}

// DateTime resolves the set fields into a concrete time.Time in the fixed
// zone given by the offset field. Date, time and offset must all be
// determinable, or the timestamp field must stand in for date and time.
// A leap-second nanosecond is normalized into the following second, since
// time.Time cannot carry nanoseconds of a second and beyond.
func (p *Parsed) DateTime() (time.Time, error) {
	if p.Offset == nil {
		return time.Time{}, ErrNotEnough
	}
	n, err := p.naiveDateTime(*p.Offset)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := n.date.Date()
	return time.Date(y, m, d, n.hour, n.minute, n.sec, n.nano, time.FixedZone("", *p.Offset)), nil
}
