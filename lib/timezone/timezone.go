package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic(err)
	}
}

// force the portal timezone regardless of where the process runs,
// otherwise date math based on <time.Time>.Year()/Month()/Day() drifts
// by a day around midnight
func Now() time.Time {
	return time.Now().In(Location)
}

// SchoolYearStart returns the first day of August of the school year
// containing now.
func SchoolYearStart(now time.Time) time.Time {
	start := time.Date(now.Year(), 8, 1, 0, 0, 0, 0, Location)
	if now.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	return start
}

// SchoolYearEnd returns the last second of July of the school year
// containing now.
func SchoolYearEnd(now time.Time) time.Time {
	end := time.Date(now.Year(), 7, 31, 23, 59, 59, 0, Location)
	if now.After(end) {
		end = end.AddDate(1, 0, 0)
	}
	return end
}
