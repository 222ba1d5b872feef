package ecg

// Interval is the time between two consecutive beats. Beat is the later of
// the two beats, i.e. the one that closes the interval.
type Interval struct {
	Index    int       `json:"index"`
	Duration float64   `json:"duration"` // seconds
	Beat     Heartbeat `json:"beat"`
}

// Sequence is an ordered arena of RR intervals. Neighbours are resolved by
// index, so an interval never holds a reference to another interval.
type Sequence struct {
	intervals []Interval
}

// Build turns chronologically ordered heartbeats into N-1 RR intervals.
// Fewer than two beats yield an empty sequence.
func Build(beats []Heartbeat) *Sequence {
	if len(beats) < 2 {
		return &Sequence{intervals: []Interval{}}
	}

	intervals := make([]Interval, 0, len(beats)-1)
	for i := 1; i < len(beats); i++ {
		intervals = append(intervals, Interval{
			Index:    i - 1,
			Duration: beats[i].Time - beats[i-1].Time,
			Beat:     beats[i],
		})
	}

	return &Sequence{intervals: intervals}
}

// Len returns the number of intervals
func (s *Sequence) Len() int {
	return len(s.intervals)
}

// At returns the interval at index i
func (s *Sequence) At(i int) Interval {
	return s.intervals[i]
}

// Intervals returns a copy of the intervals in chronological order
func (s *Sequence) Intervals() []Interval {
	out := make([]Interval, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Previous returns the interval immediately before index i
func (s *Sequence) Previous(i int) (Interval, bool) {
	if i <= 0 || i > len(s.intervals)-1 {
		return Interval{}, false
	}
	return s.intervals[i-1], true
}

// Next returns the interval immediately after index i
func (s *Sequence) Next(i int) (Interval, bool) {
	if i < 0 || i >= len(s.intervals)-1 {
		return Interval{}, false
	}
	return s.intervals[i+1], true
}

// Durations returns the RR durations in seconds
func (s *Sequence) Durations() []float64 {
	out := make([]float64, len(s.intervals))
	for i, iv := range s.intervals {
		out[i] = iv.Duration
	}
	return out
}

// Timestamps returns the time (seconds) at which each interval ends
func (s *Sequence) Timestamps() []float64 {
	out := make([]float64, len(s.intervals))
	for i, iv := range s.intervals {
		out[i] = iv.Beat.Time
	}
	return out
}
