package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonesrussell/vidwatch/internal/domain"
	"github.com/jonesrussell/vidwatch/internal/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testVideo(id string) *domain.Video {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Video{
		ID:             id,
		Title:          "Build an App with Claude Code",
		Description:    "AI coding session",
		Tags:           []string{"ai", "coding"},
		ChannelID:      "UC123",
		ChannelName:    "Test Channel",
		PublishedAt:    now.Add(-24 * time.Hour),
		ViewCount:      1500,
		LikeCount:      120,
		CommentCount:   30,
		URL:            "https://www.youtube.com/watch?v=" + id,
		ThumbnailURL:   "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg",
		DiscoveredAt:   now,
		Categories:     []string{"claude", "tutorials"},
		RelevanceScore: 45,
	}
}

func TestPutIfAbsentStoresOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	stored, err := s.PutIfAbsent(ctx, testVideo("abc123"))
	if err != nil {
		t.Fatalf("PutIfAbsent() error = %v", err)
	}
	if !stored {
		t.Fatal("first PutIfAbsent() stored = false, want true")
	}

	dup := testVideo("abc123")
	dup.Title = "A different title"
	stored, err = s.PutIfAbsent(ctx, dup)
	if err != nil {
		t.Fatalf("second PutIfAbsent() error = %v", err)
	}
	if stored {
		t.Fatal("second PutIfAbsent() stored = true, want false")
	}

	got, err := s.Get(ctx, "abc123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "Build an App with Claude Code" {
		t.Errorf("stored title = %q, want original preserved", got.Title)
	}
}

func TestPutIfAbsentConcurrent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const workers = 8
	results := make([]bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stored, err := s.PutIfAbsent(ctx, testVideo("race01"))
			if err != nil {
				t.Errorf("PutIfAbsent() error = %v", err)
				return
			}
			results[i] = stored
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, stored := range results {
		if stored {
			wins++
		}
	}
	if wins != 1 {
		t.Errorf("concurrent PutIfAbsent wins = %d, want exactly 1", wins)
	}
}

func TestGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := testVideo("rt001")
	if _, err := s.PutIfAbsent(ctx, want); err != nil {
		t.Fatalf("PutIfAbsent() error = %v", err)
	}

	got, err := s.Get(ctx, "rt001")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if got.ID != want.ID || got.Title != want.Title || got.ChannelName != want.ChannelName {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
	if got.RelevanceScore != want.RelevanceScore {
		t.Errorf("RelevanceScore = %d, want %d", got.RelevanceScore, want.RelevanceScore)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "ai" || got.Tags[1] != "coding" {
		t.Errorf("Tags = %v, want %v", got.Tags, want.Tags)
	}
	if len(got.Categories) != 2 || got.Categories[0] != "claude" {
		t.Errorf("Categories = %v, want %v", got.Categories, want.Categories)
	}
	if !got.PublishedAt.Equal(want.PublishedAt) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, want.PublishedAt)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestExists(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "nope")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("Exists() = true for absent id")
	}

	if _, err := s.PutIfAbsent(ctx, testVideo("yes01")); err != nil {
		t.Fatalf("PutIfAbsent() error = %v", err)
	}
	ok, err = s.Exists(ctx, "yes01")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !ok {
		t.Error("Exists() = false for stored id")
	}
}

func TestQueryFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, mod := range []func(*domain.Video){
		func(v *domain.Video) { v.RelevanceScore = 80; v.Categories = []string{"claude"} },
		func(v *domain.Video) { v.RelevanceScore = 40; v.Categories = []string{"chatgpt"} },
		func(v *domain.Video) {
			v.RelevanceScore = 20
			v.Categories = []string{"tools"}
			v.Title = "VS Code extensions roundup"
		},
	} {
		v := testVideo(fmt.Sprintf("vid%02d", i))
		mod(v)
		if _, err := s.PutIfAbsent(ctx, v); err != nil {
			t.Fatalf("PutIfAbsent() error = %v", err)
		}
	}

	got, err := s.Query(ctx, domain.VideoFilter{Category: "claude"})
	if err != nil {
		t.Fatalf("Query(category) error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "vid00" {
		t.Errorf("Query(category=claude) = %v, want [vid00]", ids(got))
	}

	got, err = s.Query(ctx, domain.VideoFilter{MinScore: 40})
	if err != nil {
		t.Fatalf("Query(min_score) error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Query(min_score=40) returned %d videos, want 2", len(got))
	}

	got, err = s.Query(ctx, domain.VideoFilter{Search: "vs code"})
	if err != nil {
		t.Fatalf("Query(search) error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "vid02" {
		t.Errorf("Query(search) = %v, want [vid02]", ids(got))
	}

	got, err = s.Query(ctx, domain.VideoFilter{Limit: 2})
	if err != nil {
		t.Fatalf("Query(limit) error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Query(limit=2) returned %d videos, want 2", len(got))
	}
}

func TestQueryOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)

	a := testVideo("aaa")
	a.RelevanceScore = 50
	a.DiscoveredAt = base

	b := testVideo("bbb")
	b.RelevanceScore = 90
	b.DiscoveredAt = base

	// Same score as a, discovered later: ranks above a.
	c := testVideo("ccc")
	c.RelevanceScore = 50
	c.DiscoveredAt = base.Add(time.Hour)

	for _, v := range []*domain.Video{a, b, c} {
		if _, err := s.PutIfAbsent(ctx, v); err != nil {
			t.Fatalf("PutIfAbsent() error = %v", err)
		}
	}

	got, err := s.Query(ctx, domain.VideoFilter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	want := []string{"bbb", "ccc", "aaa"}
	if len(got) != len(want) {
		t.Fatalf("Query() returned %d videos, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Query()[%d].ID = %s, want %s (order %v)", i, got[i].ID, id, ids(got))
		}
	}
}

func TestAllForDate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	today := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

	v1 := testVideo("day01")
	v1.DiscoveredAt = today
	v2 := testVideo("day02")
	v2.DiscoveredAt = today.Add(-48 * time.Hour)

	for _, v := range []*domain.Video{v1, v2} {
		if _, err := s.PutIfAbsent(ctx, v); err != nil {
			t.Fatalf("PutIfAbsent() error = %v", err)
		}
	}

	got, err := s.AllForDate(ctx, "2025-06-15")
	if err != nil {
		t.Fatalf("AllForDate() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "day01" {
		t.Errorf("AllForDate() = %v, want [day01]", ids(got))
	}
}

func TestDailyReportReplace(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	report := &domain.DailyReport{
		Date:        "2025-06-15",
		TotalVideos: 3,
		Categories:  map[string]int{"claude": 2, "tools": 1},
		Channels:    []string{"Test Channel"},
		GeneratedAt: time.Now().UTC(),
	}
	if err := s.SaveDailyReport(ctx, report); err != nil {
		t.Fatalf("SaveDailyReport() error = %v", err)
	}

	report.TotalVideos = 5
	if err := s.SaveDailyReport(ctx, report); err != nil {
		t.Fatalf("second SaveDailyReport() error = %v", err)
	}

	got, err := s.DailyReport(ctx, "2025-06-15")
	if err != nil {
		t.Fatalf("DailyReport() error = %v", err)
	}
	if got.TotalVideos != 5 {
		t.Errorf("TotalVideos = %d, want 5 after replace", got.TotalVideos)
	}
	if got.Categories["claude"] != 2 {
		t.Errorf("Categories[claude] = %d, want 2", got.Categories["claude"])
	}
}

func TestDailyReportNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.DailyReport(context.Background(), "1999-01-01")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DailyReport() error = %v, want ErrNotFound", err)
	}
}

func TestListDailyReportsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2025-06-13", "2025-06-15", "2025-06-14"} {
		err := s.SaveDailyReport(ctx, &domain.DailyReport{
			Date:        date,
			Categories:  map[string]int{},
			GeneratedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("SaveDailyReport(%s) error = %v", date, err)
		}
	}

	got, err := s.ListDailyReports(ctx)
	if err != nil {
		t.Fatalf("ListDailyReports() error = %v", err)
	}

	want := []string{"2025-06-15", "2025-06-14", "2025-06-13"}
	if len(got) != len(want) {
		t.Fatalf("ListDailyReports() returned %d reports, want %d", len(got), len(want))
	}
	for i, date := range want {
		if got[i].Date != date {
			t.Errorf("ListDailyReports()[%d].Date = %s, want %s", i, got[i].Date, date)
		}
	}
}

func ids(videos []*domain.Video) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.ID
	}
	return out
}
