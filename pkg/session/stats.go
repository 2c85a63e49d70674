package session

import "time"

// Stats counts chat turns and keeps every turn's response time.
type Stats struct {
	Turns     int
	Durations []time.Duration
}

// Record appends one response time.
func (s *Stats) Record(d time.Duration) {
	s.Durations = append(s.Durations, d)
}

// Average is the arithmetic mean of recorded durations, zero when none.
func (s *Stats) Average() time.Duration {
	if len(s.Durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s.Durations {
		total += d
	}
	return total / time.Duration(len(s.Durations))
}
