package captions

// Segment is one caption: a piece of text shown on screen for [StartTime, EndTime).
// Times are in seconds.
type Segment struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

// Duration returns how long the segment stays on screen.
func (s Segment) Duration() float64 {
	return s.EndTime - s.StartTime
}
