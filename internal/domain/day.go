package domain

import "fmt"

// SecondsPerDay quantizes wall-clock time into epoch days.
const SecondsPerDay = 86400

// EpochDay converts unix seconds into a whole-day counter. All accrual and
// decay arithmetic runs on these values, never on sub-day granularity.
func EpochDay(unixSeconds int64) int64 {
	return unixSeconds / SecondsPerDay
}

// DayToDate renders an epoch day as a "DD-MM-YYYY" calendar date.
// Civil-from-days algorithm, see howardhinnant.github.io/date_algorithms.html.
func DayToDate(day int64) string {
	day += 719468

	era := day
	if day < 0 {
		era = day - 146096
	}
	era /= 146097

	doe := day - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1

	m := mp + 3
	if mp >= 10 {
		m = mp - 9
	}

	if m <= 2 {
		y++
	}

	return fmt.Sprintf("%02d-%02d-%d", d, m, y)
}
