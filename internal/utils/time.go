package utils

import "time"

// NoteTimestampLayout matches how note entries are stamped.
const NoteTimestampLayout = "2006-01-02T15:04:05"

func Now() time.Time {
	return time.Now().UTC()
}
