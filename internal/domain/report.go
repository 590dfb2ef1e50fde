package domain

import "time"

// TopItemsLimit caps the number of videos carried in a daily report.
const TopItemsLimit = 10

// DailyReport is the per-calendar-date rollup of newly discovered videos.
// It is regenerated in full after every cycle for the current day and
// replaces any previously stored report for that date.
type DailyReport struct {
	Date        string         `json:"date"` // YYYY-MM-DD
	TotalVideos int            `json:"total_videos"`
	Categories  map[string]int `json:"categories"`
	TopVideos   []*Video       `json:"top_videos"`
	Channels    []string       `json:"channels"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// WindowStats aggregates discovered videos over an arbitrary lookback window
// for the dashboard API.
type WindowStats struct {
	TotalVideos    int            `json:"total_videos"`
	Categories     map[string]int `json:"categories"`
	TrendingTopics map[string]int `json:"trending_topics"`
	Channels       []string       `json:"channels"`
	AverageScore   float64        `json:"average_score"`
	WindowDays     int            `json:"window_days"`
}
