package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/util"
	"net/http"
	"net/url"
	"time"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// VideoSearchService YouTube Data API 搜索的薄封装，实现 ContentSearcher
type VideoSearchService struct {
	config config.SearchConfig
	client *http.Client
}

func NewVideoSearchService(cfg config.SearchConfig) *VideoSearchService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultYouTubeBaseURL
	}
	return &VideoSearchService{
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search 按查询词搜索视频，level 拼进查询词影响结果难度
func (s *VideoSearchService) Search(ctx context.Context, query string, opts SearchOptions) ([]model.Resource, error) {
	if s.config.APIKey == "" {
		return nil, util.ErrNoSearchConfigured
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.config.MaxResults
	}

	q := query
	if opts.Level != "" {
		q = fmt.Sprintf("%s %s tutorial", query, opts.Level)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", q)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("key", s.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, "GET", s.config.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video search error (status %d): %s", resp.StatusCode, string(body))
	}

	var result youtubeSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	resources := make([]model.Resource, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		resources = append(resources, model.Resource{
			URL:           "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Title:         item.Snippet.Title,
			Type:          model.TypeVideo,
			Creator:       item.Snippet.ChannelTitle,
			EstimatedCost: "Free",
		})
	}

	return resources, nil
}
