package patient

// ChangeLog is a last-in-first-out log of change descriptions.
// The zero value is an empty log ready to use.
type ChangeLog struct {
	entries []string
}

// Push appends a description on top of the log.
func (l *ChangeLog) Push(description string) {
	l.entries = append(l.entries, description)
}

// Pop removes and returns the newest entry. ok is false when the log is empty.
func (l *ChangeLog) Pop() (string, bool) {
	n := len(l.entries)
	if n == 0 {
		return "", false
	}
	top := l.entries[n-1]
	l.entries[n-1] = ""
	l.entries = l.entries[:n-1]
	return top, true
}

// Peek returns the newest entry without removing it.
func (l *ChangeLog) Peek() (string, bool) {
	if len(l.entries) == 0 {
		return "", false
	}
	return l.entries[len(l.entries)-1], true
}

// Len returns the number of recorded changes.
func (l *ChangeLog) Len() int {
	return len(l.entries)
}

func (l *ChangeLog) clone() ChangeLog {
	entries := make([]string, len(l.entries))
	copy(entries, l.entries)
	return ChangeLog{entries: entries}
}
