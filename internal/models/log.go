package models

import "time"

// Log is a single journal entry authored by a user.
type Log struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	EmotionID *int64    `json:"emotionId,omitempty"`
	Date      time.Time `json:"date"`
}

// HasEmotion reports whether the log references an emotion tag
func (l Log) HasEmotion() bool {
	return l.EmotionID != nil
}

// DateToEpoch converts a log date to the integer epoch stored in the database (milliseconds).
func DateToEpoch(t time.Time) int64 {
	return t.UnixMilli()
}

// EpochToDate is the inverse of DateToEpoch. The result is in UTC.
func EpochToDate(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
