package service

import (
	"math"

	attendanceEntity "beacon-attendance/modules/attendance/entity"
	"beacon-attendance/modules/report/entity"
)

// Tally is the per status count of a set of attendance rows.
type Tally struct {
	Total   int
	Present int
	Late    int
	Absent  int
}

func TallyOf(counts []entity.StatusCount) Tally {
	var t Tally
	for _, c := range counts {
		t.Total += c.Count
		switch attendanceEntity.Status(c.Status) {
		case attendanceEntity.StatusPresent:
			t.Present += c.Count
		case attendanceEntity.StatusLate:
			t.Late += c.Count
		case attendanceEntity.StatusAbsent:
			t.Absent += c.Count
		}
	}
	return t
}

// Percent returns part/total*100 rounded to two decimals, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
