package engine

// MinutesPerDay is the length of a simulated run.
const MinutesPerDay = 24 * 60

// SecondsPerMinute converts simulated minutes to timestamp seconds.
const SecondsPerMinute = 60

// TimeTickPayload is the data attached to each TIME_TICK event.
type TimeTickPayload struct {
	Minute int   `json:"minute"` // 0-1439
	Hour   int   `json:"hour"`   // 0-23
	Now    int64 `json:"now"`    // simulated seconds since epoch
}

// Clock is the discrete minute-by-minute simulation clock.
// It never reads the wall clock; Now is derived from the start timestamp.
type Clock struct {
	start  int64
	minute int
}

// NewClock creates a clock at minute 0 of a day beginning at start.
func NewClock(start int64) *Clock {
	return &Clock{start: start}
}

// Minute returns the current simulated minute.
func (c *Clock) Minute() int {
	return c.minute
}

// Now is the injected "current time" for wait computations.
func (c *Clock) Now() int64 {
	return c.start + int64(c.minute)*SecondsPerMinute
}

// Done reports whether the whole day has been processed.
func (c *Clock) Done() bool {
	return c.minute >= MinutesPerDay
}

// Payload describes the current minute.
func (c *Clock) Payload() TimeTickPayload {
	return TimeTickPayload{
		Minute: c.minute,
		Hour:   c.minute / 60,
		Now:    c.Now(),
	}
}

// Advance moves the clock forward one minute.
func (c *Clock) Advance() {
	c.minute++
}
