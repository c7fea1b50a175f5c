package engine

import "time"

// shSignThreshold is the day-of-month cutoff for the shareholder signing
// date: cash-in before the 15th signs at the end of the same month,
// otherwise at the end of the next month.
const shSignThreshold = 15

// shareholderSignDate derives the shareholder signing date from the
// cash-in date: the last business day of the cash-in month when the
// day-of-month is before the 15th, of the following month otherwise.
// A December cash-in on or after the 15th rolls over into January of the
// next year.
func shareholderSignDate(cashIn time.Time) time.Time {
	year, month := cashIn.Year(), cashIn.Month()
	if cashIn.Day() >= shSignThreshold {
		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return lastBusinessDay(year, month)
}

// lastBusinessDay walks backward from the calendar month end until the day
// is neither Saturday nor Sunday.
func lastBusinessDay(year int, month time.Month) time.Time {
	// Day zero of the next month is the last day of this one.
	d := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
