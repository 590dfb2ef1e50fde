package youtube

import (
	"strconv"
	"time"

	"github.com/jonesrussell/vidwatch/internal/domain"
)

type channelsResponse struct {
	Items []struct {
		ContentDetails struct {
			RelatedPlaylists struct {
				Uploads string `json:"uploads"`
			} `json:"relatedPlaylists"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	Items []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videosResponse struct {
	Items []videoResource `json:"items"`
}

type videoResource struct {
	ID      string `json:"id"`
	Snippet struct {
		PublishedAt  time.Time `json:"publishedAt"`
		ChannelID    string    `json:"channelId"`
		Title        string    `json:"title"`
		Description  string    `json:"description"`
		ChannelTitle string    `json:"channelTitle"`
		Tags         []string  `json:"tags"`
		Thumbnails   struct {
			High struct {
				URL string `json:"url"`
			} `json:"high"`
			Default struct {
				URL string `json:"url"`
			} `json:"default"`
		} `json:"thumbnails"`
	} `json:"snippet"`
	// Statistics counters arrive as decimal strings.
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
}

func (r *videoResource) toDomain() *domain.Video {
	thumbnail := r.Snippet.Thumbnails.High.URL
	if thumbnail == "" {
		thumbnail = r.Snippet.Thumbnails.Default.URL
	}
	return &domain.Video{
		ID:           r.ID,
		Title:        r.Snippet.Title,
		Description:  r.Snippet.Description,
		Tags:         r.Snippet.Tags,
		ChannelID:    r.Snippet.ChannelID,
		ChannelName:  r.Snippet.ChannelTitle,
		PublishedAt:  r.Snippet.PublishedAt,
		ViewCount:    parseCount(r.Statistics.ViewCount),
		LikeCount:    parseCount(r.Statistics.LikeCount),
		CommentCount: parseCount(r.Statistics.CommentCount),
		URL:          "https://www.youtube.com/watch?v=" + r.ID,
		ThumbnailURL: thumbnail,
	}
}

func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
