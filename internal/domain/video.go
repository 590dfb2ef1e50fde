package domain

import "time"

// Video represents a single discovered video with source metadata and
// engagement counts. Records are immutable once persisted.
type Video struct {
	// Source-assigned identifiers
	ID          string `db:"id"           json:"id"`
	Title       string `db:"title"        json:"title"`
	Description string `db:"description"  json:"description"`
	ChannelID   string `db:"channel_id"   json:"channel_id"`
	ChannelName string `db:"channel_name" json:"channel_name"`

	Tags []string `db:"-" json:"tags"`

	PublishedAt time.Time `db:"published_at" json:"published_at"`

	// Engagement counts at discovery time
	ViewCount    int64 `db:"view_count"    json:"view_count"`
	LikeCount    int64 `db:"like_count"    json:"like_count"`
	CommentCount int64 `db:"comment_count" json:"comment_count"`

	URL          string `db:"url"           json:"url,omitempty"`
	ThumbnailURL string `db:"thumbnail_url" json:"thumbnail_url,omitempty"`

	// Derived fields, set exactly once at discovery and never recomputed
	DiscoveredAt   time.Time `db:"discovered_at"   json:"discovered_at"`
	Categories     []string  `db:"-"               json:"categories"`
	RelevanceScore int       `db:"relevance_score" json:"relevance_score"`
}

// VideoFilter holds the query parameters for the record store.
// Zero values mean "no constraint".
type VideoFilter struct {
	Category     string
	MinScore     int
	Search       string // substring over title/description/channel name
	LookbackDays int    // items discovered within the last N days
	Limit        int
}
