package models

// Emotion is a tag classifying the emotional content of a log entry.
type Emotion struct {
	ID     int64  `json:"id"`
	LogID  *int64 `json:"logId,omitempty"`
	UserID int64  `json:"userId"`
	Type   string `json:"type"`
}
