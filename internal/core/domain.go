package core

import (
	"errors"
	"time"
)

type (
	// Date is a calendar date (midnight UTC). All temporal bucketing and
	// filtering compares dates, never timestamps.
	Date struct {
		time.Time
	}

	// Order is one line item of a sales order. A single order_id may span
	// several rows. Derived fields are computed once by the derivation step
	// and never mutated afterwards.
	Order struct {
		OrderID       string
		CustomerID    string
		Category      string
		Region        string
		PaymentMethod string
		Quantity      int
		Price         float64
		Discount      float64
		OrderDate     Date

		// Derived
		Sales      float64
		OrderMonth Date
		OrderWeek  Date
		OrderDay   Date
	}
)

var ErrZeroDate = errors.New("date cannot be zero")

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, int(m), d)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// StartOfWeek returns the Monday on or before d.
func (d Date) StartOfWeek() Date {
	offset := (int(d.Weekday()) + 6) % 7
	return DateOf(d.AddDate(0, 0, -offset))
}

// AddMonths returns the date n calendar months after d.
func (d Date) AddMonths(n int) Date {
	return DateOf(d.AddDate(0, n, 0))
}

// MonthsSince returns the number of whole calendar months from other to d,
// ignoring days. Negative when d's month precedes other's.
func (d Date) MonthsSince(other Date) int {
	return (d.Year()-other.Year())*12 + d.Month() - other.Month()
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}
