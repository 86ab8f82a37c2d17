package datescan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetFieldConsistency(t *testing.T) {
	var p Parsed
	assert.NoError(t, p.SetYear(1987))
	assert.NoError(t, p.SetYear(1987))
	assert.ErrorIs(t, p.SetYear(1986), ErrInvalid)

	assert.NoError(t, p.SetMonth(5))
	assert.ErrorIs(t, p.SetMonth(6), ErrInvalid)

	// a 24-hour value and a 12-hour value plus marker must agree
	var q Parsed
	assert.NoError(t, q.SetHour(15))
	assert.NoError(t, q.SetHour12(3))
	assert.NoError(t, q.SetAmPm(true))
	assert.ErrorIs(t, q.SetAmPm(false), ErrInvalid)
}

func TestSetFieldRanges(t *testing.T) {
	var p Parsed
	assert.ErrorIs(t, p.SetMonth(0), ErrOutOfRange)
	assert.ErrorIs(t, p.SetMonth(13), ErrOutOfRange)
	assert.ErrorIs(t, p.SetDay(0), ErrOutOfRange)
	assert.ErrorIs(t, p.SetDay(32), ErrOutOfRange)
	assert.ErrorIs(t, p.SetOrdinal(0), ErrOutOfRange)
	assert.ErrorIs(t, p.SetOrdinal(367), ErrOutOfRange)
	assert.ErrorIs(t, p.SetHour(24), ErrOutOfRange)
	assert.ErrorIs(t, p.SetHour12(0), ErrOutOfRange)
	assert.ErrorIs(t, p.SetHour12(13), ErrOutOfRange)
	assert.ErrorIs(t, p.SetMinute(60), ErrOutOfRange)
	assert.ErrorIs(t, p.SetSecond(60), ErrOutOfRange)
	assert.ErrorIs(t, p.SetNanosecond(2_000_000_000), ErrOutOfRange)
	assert.NoError(t, p.SetNanosecond(1_999_999_999))
	assert.ErrorIs(t, p.SetOffset(86400), ErrOutOfRange)
	assert.ErrorIs(t, p.SetOffset(-86400), ErrOutOfRange)
	assert.ErrorIs(t, p.SetYearDiv100(100), ErrOutOfRange)
	assert.ErrorIs(t, p.SetYearMod100(100), ErrOutOfRange)
	assert.ErrorIs(t, p.SetWeekFromSun(54), ErrOutOfRange)
	assert.ErrorIs(t, p.SetIsoWeek(54), ErrOutOfRange)
	assert.ErrorIs(t, p.SetYear(MaxYear+1), ErrOutOfRange)
	assert.ErrorIs(t, p.SetYear(MinYear-1), ErrOutOfRange)

	// SetHour12 stores zero-based
	var q Parsed
	assert.NoError(t, q.SetHour12(12))
	assert.Equal(t, 0, *q.HourMod12)
}

type dateFixture struct {
	fill func(*Parsed) error
	out  string
	err  error
}

func mkDate(fs ...func(*Parsed) error) func(*Parsed) error {
	return func(p *Parsed) error {
		for _, f := range fs {
			if err := f(p); err != nil {
				return err
			}
		}
		return nil
	}
}

func year(v int64) func(*Parsed) error    { return func(p *Parsed) error { return p.SetYear(v) } }
func month(v int64) func(*Parsed) error   { return func(p *Parsed) error { return p.SetMonth(v) } }
func day(v int64) func(*Parsed) error     { return func(p *Parsed) error { return p.SetDay(v) } }
func ordinal(v int64) func(*Parsed) error { return func(p *Parsed) error { return p.SetOrdinal(v) } }
func weekday(v time.Weekday) func(*Parsed) error {
	return func(p *Parsed) error { return p.SetWeekday(v) }
}

func TestParsedDate(t *testing.T) {
	tests := []dateFixture{
		{fill: mkDate(year(1984), month(1), day(2)), out: "1984-01-02"},
		{fill: mkDate(year(1984)), err: ErrNotEnough},
		{fill: mkDate(year(1984), month(1)), err: ErrNotEnough},
		{fill: mkDate(month(1), day(2)), err: ErrNotEnough},
		{fill: mkDate(), err: ErrNotEnough},

		// split years and century inference
		{
			fill: mkDate(func(p *Parsed) error { return p.SetYearMod100(84) }, month(1), day(2)),
			out:  "1984-01-02",
		},
		{
			fill: mkDate(func(p *Parsed) error { return p.SetYearMod100(69) }, month(1), day(2)),
			out:  "2069-01-02",
		},
		{
			fill: mkDate(func(p *Parsed) error { return p.SetYearMod100(70) }, month(1), day(2)),
			out:  "1970-01-02",
		},
		{
			fill: mkDate(
				func(p *Parsed) error { return p.SetYearDiv100(19) },
				func(p *Parsed) error { return p.SetYearMod100(84) },
				month(1), day(2),
			),
			out: "1984-01-02",
		},
		{
			fill: mkDate(func(p *Parsed) error { return p.SetYearDiv100(19) }, month(1), day(2)),
			err:  ErrNotEnough,
		},
		{
			fill: mkDate(
				year(1984),
				func(p *Parsed) error { return p.SetYearDiv100(19) },
				func(p *Parsed) error { return p.SetYearMod100(84) },
				month(1), day(2),
			),
			out: "1984-01-02",
		},
		{
			fill: mkDate(
				year(1984),
				func(p *Parsed) error { return p.SetYearDiv100(18) },
				month(1), day(2),
			),
			err: ErrInvalid,
		},

		// calendar validity
		{fill: mkDate(year(2015), month(2), day(30)), err: ErrOutOfRange},
		{fill: mkDate(year(2014), month(2), day(29)), err: ErrOutOfRange},
		{fill: mkDate(year(2012), month(2), day(29)), out: "2012-02-29"},

		// ordinal dates
		{fill: mkDate(year(2000), ordinal(60)), out: "2000-02-29"},
		{fill: mkDate(year(2001), ordinal(60)), out: "2001-03-01"},
		{fill: mkDate(year(2001), ordinal(366)), err: ErrOutOfRange},
		{fill: mkDate(year(2000), ordinal(366)), out: "2000-12-31"},

		// weekday cross-check against a complete date
		{fill: mkDate(year(2015), month(1), day(20), weekday(time.Tuesday)), out: "2015-01-20"},
		{fill: mkDate(year(2015), month(1), day(20), weekday(time.Wednesday)), err: ErrInvalid},
		{fill: mkDate(year(2015), month(1), day(20), ordinal(20)), out: "2015-01-20"},
		{fill: mkDate(year(2015), month(1), day(20), ordinal(21)), err: ErrInvalid},

		// ISO week dates
		{
			fill: mkDate(
				func(p *Parsed) error { return p.SetIsoYear(2015) },
				func(p *Parsed) error { return p.SetIsoWeek(4) },
				weekday(time.Tuesday),
			),
			out: "2015-01-20",
		},
		{
			fill: mkDate(
				func(p *Parsed) error { return p.SetIsoYear(2014) },
				func(p *Parsed) error { return p.SetIsoWeek(53) },
				weekday(time.Monday),
			),
			// 2014 has no ISO week 53
			err: ErrOutOfRange,
		},
		{
			fill: mkDate(
				func(p *Parsed) error { return p.SetIsoYear(2015) },
				func(p *Parsed) error { return p.SetIsoWeek(53) },
				weekday(time.Monday),
			),
			out: "2015-12-28",
		},

		// week numbers counted from the first Sunday / Monday of January
		{
			fill: mkDate(year(2000), func(p *Parsed) error { return p.SetWeekFromSun(1) }, weekday(time.Sunday)),
			out:  "2000-01-02",
		},
		{
			fill: mkDate(year(2000), func(p *Parsed) error { return p.SetWeekFromSun(0) }, weekday(time.Saturday)),
			out:  "2000-01-01",
		},
		{
			fill: mkDate(year(2000), func(p *Parsed) error { return p.SetWeekFromMon(1) }, weekday(time.Monday)),
			out:  "2000-01-03",
		},
	}
	for i, tt := range tests {
		var p Parsed
		err := tt.fill(&p)
		var d time.Time
		if err == nil {
			d, err = p.Date()
		}
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "fixture %d", i)
			continue
		}
		assert.NoError(t, err, "fixture %d", i)
		assert.Equal(t, tt.out, d.Format("2006-01-02"), "fixture %d", i)
	}
}

func TestParsedTimeOfDay(t *testing.T) {
	var p Parsed
	assert.NoError(t, p.SetHour(23))
	assert.NoError(t, p.SetMinute(59))
	assert.NoError(t, p.SetSecond(58))
	d, err := p.TimeOfDay()
	assert.NoError(t, err)
	assert.Equal(t, 23*time.Hour+59*time.Minute+58*time.Second, d)

	// second defaults to zero
	var q Parsed
	assert.NoError(t, q.SetHour12(3))
	assert.NoError(t, q.SetAmPm(true))
	assert.NoError(t, q.SetMinute(4))
	d, err = q.TimeOfDay()
	assert.NoError(t, err)
	assert.Equal(t, 15*time.Hour+4*time.Minute, d)

	// a nanosecond without a second is underdetermined
	var r Parsed
	assert.NoError(t, r.SetHour(1))
	assert.NoError(t, r.SetMinute(2))
	assert.NoError(t, r.SetNanosecond(500_000_000))
	_, err = r.TimeOfDay()
	assert.ErrorIs(t, err, ErrNotEnough)

	// a leap second reaches past the last ordinary instant of the day
	var l Parsed
	assert.NoError(t, l.SetHour(23))
	assert.NoError(t, l.SetMinute(59))
	assert.NoError(t, l.SetSecond(59))
	assert.NoError(t, l.SetNanosecond(1_000_000_000))
	d, err = l.TimeOfDay()
	assert.NoError(t, err)
	assert.Equal(t, 24*time.Hour, d)

	// hour halves alone are not enough
	var h Parsed
	assert.NoError(t, h.SetHour12(3))
	assert.NoError(t, h.SetMinute(4))
	_, err = h.TimeOfDay()
	assert.ErrorIs(t, err, ErrNotEnough)
}

func TestParsedZone(t *testing.T) {
	var p Parsed
	_, err := p.Zone()
	assert.ErrorIs(t, err, ErrNotEnough)

	assert.NoError(t, p.SetOffset(-28800))
	loc, err := p.Zone()
	assert.NoError(t, err)
	_, offset := time.Date(2015, 1, 20, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -28800, offset)
}

func TestParsedDateTime(t *testing.T) {
	fill := func(p *Parsed) {
		assert.NoError(t, p.SetYear(2015))
		assert.NoError(t, p.SetMonth(2))
		assert.NoError(t, p.SetDay(4))
		assert.NoError(t, p.SetHour(14))
		assert.NoError(t, p.SetMinute(37))
		assert.NoError(t, p.SetSecond(5))
	}

	var p Parsed
	fill(&p)
	_, err := p.DateTime()
	assert.ErrorIs(t, err, ErrNotEnough)

	assert.NoError(t, p.SetOffset(32400))
	ts, err := p.DateTime()
	assert.NoError(t, err)
	assert.Equal(t, "2015-02-04 14:37:05 +0900", ts.Format("2006-01-02 15:04:05 -0700"))

	// a matching timestamp is cross-checked, a disagreeing one rejected
	want := time.Date(2015, 2, 4, 14, 37, 5, 0, time.FixedZone("", 32400))
	var q Parsed
	fill(&q)
	assert.NoError(t, q.SetOffset(32400))
	assert.NoError(t, q.SetTimestamp(want.Unix()))
	_, err = q.DateTime()
	assert.NoError(t, err)

	var r Parsed
	fill(&r)
	assert.NoError(t, r.SetOffset(32400))
	assert.NoError(t, r.SetTimestamp(want.Unix()+1))
	_, err = r.DateTime()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParsedDateTimeFromTimestamp(t *testing.T) {
	// the timestamp alone determines date and time
	var p Parsed
	assert.NoError(t, p.SetTimestamp(1420070400))
	assert.NoError(t, p.SetOffset(0))
	ts, err := p.DateTime()
	assert.NoError(t, err)
	assert.True(t, ts.Equal(time.Unix(1420070400, 0)))

	// the derived fields must not conflict with explicitly set ones
	var q Parsed
	assert.NoError(t, q.SetTimestamp(1420070400))
	assert.NoError(t, q.SetOffset(0))
	assert.NoError(t, q.SetSecond(1))
	_, err = q.DateTime()
	assert.ErrorIs(t, err, ErrInvalid)

	// a nonzero offset shifts the derived wall clock
	var r Parsed
	assert.NoError(t, r.SetTimestamp(1420070400))
	assert.NoError(t, r.SetOffset(-28800))
	ts, err = r.DateTime()
	assert.NoError(t, err)
	assert.Equal(t, "2014-12-31 16:00:00 -0800", ts.Format("2006-01-02 15:04:05 -0700"))
}
