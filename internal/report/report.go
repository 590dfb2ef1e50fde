// Package report aggregates stored videos into daily rollups and window
// statistics. Aggregation is pure: the same input items always produce the
// same report apart from the generation timestamp.
package report

import (
	"sort"
	"time"

	"github.com/jonesrussell/vidwatch/internal/classifier"
	"github.com/jonesrussell/vidwatch/internal/domain"
)

// trendingTopicsLimit caps the number of topics reported in window stats.
const trendingTopicsLimit = 10

// Build assembles the daily report for the given date from that date's
// discovered videos. Top videos are ranked by relevance score descending,
// ties broken by discovery time descending and then by id, capped at
// domain.TopItemsLimit. An empty item list yields a valid zero-count report.
func Build(date string, items []*domain.Video, now time.Time) *domain.DailyReport {
	report := &domain.DailyReport{
		Date:        date,
		TotalVideos: len(items),
		Categories:  categoryCounts(items),
		TopVideos:   topVideos(items, domain.TopItemsLimit),
		Channels:    distinctChannels(items),
		GeneratedAt: now.UTC(),
	}
	return report
}

// Stats aggregates a window of videos into dashboard statistics.
func Stats(items []*domain.Video, windowDays int) *domain.WindowStats {
	stats := &domain.WindowStats{
		TotalVideos:    len(items),
		Categories:     categoryCounts(items),
		TrendingTopics: trendingTopics(items),
		Channels:       distinctChannels(items),
		WindowDays:     windowDays,
	}
	if len(items) > 0 {
		total := 0
		for _, v := range items {
			total += v.RelevanceScore
		}
		stats.AverageScore = float64(total) / float64(len(items))
	}
	return stats
}

func categoryCounts(items []*domain.Video) map[string]int {
	counts := make(map[string]int)
	for _, v := range items {
		for _, c := range v.Categories {
			counts[c]++
		}
	}
	return counts
}

func topVideos(items []*domain.Video, limit int) []*domain.Video {
	ranked := make([]*domain.Video, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if !a.DiscoveredAt.Equal(b.DiscoveredAt) {
			return a.DiscoveredAt.After(b.DiscoveredAt)
		}
		return a.ID < b.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func distinctChannels(items []*domain.Video) []string {
	seen := make(map[string]bool)
	var channels []string
	for _, v := range items {
		if v.ChannelName == "" || seen[v.ChannelName] {
			continue
		}
		seen[v.ChannelName] = true
		channels = append(channels, v.ChannelName)
	}
	sort.Strings(channels)
	return channels
}

// trendingTopics counts topic occurrences across the window's items and keeps
// the ten most frequent. Ties are broken alphabetically so the result is
// stable across runs.
func trendingTopics(items []*domain.Video) map[string]int {
	counts := make(map[string]int)
	for _, v := range items {
		for _, topic := range classifier.Topics(v.Title, v.Description) {
			counts[topic]++
		}
	}
	if len(counts) <= trendingTopicsLimit {
		return counts
	}

	type topicCount struct {
		name  string
		count int
	}
	ranked := make([]topicCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, topicCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})

	top := make(map[string]int, trendingTopicsLimit)
	for _, tc := range ranked[:trendingTopicsLimit] {
		top[tc.name] = tc.count
	}
	return top
}
