package models

import (
	"testing"
	"time"
)

func TestEpochRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "millisecond precision kept",
			in:   time.Date(2024, 3, 9, 21, 15, 30, 123000000, time.UTC),
			want: time.Date(2024, 3, 9, 21, 15, 30, 123000000, time.UTC),
		},
		{
			name: "sub-millisecond truncated",
			in:   time.Date(2024, 3, 9, 21, 15, 30, 123456789, time.UTC),
			want: time.Date(2024, 3, 9, 21, 15, 30, 123000000, time.UTC),
		},
		{
			name: "non-UTC zone normalised",
			in:   time.Date(2024, 3, 9, 23, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
			want: time.Date(2024, 3, 9, 21, 0, 0, 0, time.UTC),
		},
		{
			name: "epoch zero",
			in:   time.Unix(0, 0),
			want: time.Unix(0, 0).UTC(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EpochToDate(DateToEpoch(tt.in))
			if !got.Equal(tt.want) {
				t.Errorf("EpochToDate(DateToEpoch(%v)) = %v, want %v", tt.in, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("location = %v, want UTC", got.Location())
			}
		})
	}
}

func TestHasEmotion(t *testing.T) {
	id := int64(3)
	if (Log{}).HasEmotion() {
		t.Error("HasEmotion() = true for log without emotion")
	}
	if !(Log{EmotionID: &id}).HasEmotion() {
		t.Error("HasEmotion() = false for log with emotion")
	}
}
