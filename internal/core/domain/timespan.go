package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTimeSpan = errors.New("unknown time span")
)

type TimeSpan struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Days  int    `json:"days"`
}

const DefaultTimeSpanKey = "21days"

var timeSpans = []TimeSpan{
	{Key: "week", Label: "7 Days", Days: 7},
	{Key: "21days", Label: "21 Days", Days: 21},
	{Key: "month", Label: "30 Days", Days: 30},
	{Key: "quarter", Label: "90 Days", Days: 90},
}

func TimeSpans() []TimeSpan {
	out := make([]TimeSpan, len(timeSpans))
	copy(out, timeSpans)
	return out
}

func LookupTimeSpan(key string) (TimeSpan, error) {
	for _, ts := range timeSpans {
		if ts.Key == key {
			return ts, nil
		}
	}
	return TimeSpan{}, fmt.Errorf("%w: %q", ErrUnknownTimeSpan, key)
}
