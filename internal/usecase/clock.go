package usecase

import (
	"time"

	"medcare-portal/internal/domain/entity"
)

// Clock answers "now" and "today" in the hospital's time zone.
type Clock struct {
	now func() time.Time
	loc *time.Location
}

func NewClock(loc *time.Location) Clock {
	return NewClockAt(time.Now, loc)
}

// NewClockAt uses now as the time source.
func NewClockAt(now func() time.Time, loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{now: now, loc: loc}
}

func (c Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today is the current calendar date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.Now().Format(entity.DateLayout)
}

func (c Clock) Location() *time.Location {
	return c.loc
}
