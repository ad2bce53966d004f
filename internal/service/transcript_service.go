package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/model"
	"learnpath_backend/pkg/logger"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const transcriptCacheKeyPrefix = "transcript:"

var (
	bracketedAnnotations = regexp.MustCompile(`\[[^\]]*\]`)
	collapsedWhitespace  = regexp.MustCompile(`\s+`)
)

// TranscriptService 从字幕代理服务拉取视频字幕并清洗文本
// 上游失败时返回 Available=false 的空字幕，不抛裸错误
type TranscriptService struct {
	config config.TranscriptConfig
	client *http.Client
	rdb    *redis.Client
}

func NewTranscriptService(cfg config.TranscriptConfig, rdb *redis.Client) *TranscriptService {
	return &TranscriptService{
		config: cfg,
		client: &http.Client{Timeout: 20 * time.Second},
		rdb:    rdb,
	}
}

type transcriptProxyResponse struct {
	VideoID  string `json:"videoId"`
	Language string `json:"language"`
	Segments []struct {
		Start    float64 `json:"start"`
		Duration float64 `json:"duration"`
		Text     string  `json:"text"`
	} `json:"segments"`
}

// FetchVideoTranscript 获取视频字幕，带 Redis 24 小时缓存
func (s *TranscriptService) FetchVideoTranscript(ctx context.Context, videoID string) model.Transcript {
	if cached, ok := s.fromCache(ctx, videoID); ok {
		return cached
	}

	transcript, err := s.fetch(ctx, videoID)
	if err != nil {
		logger.Log.Warn("字幕拉取失败", zap.String("videoId", videoID), zap.Error(err))
		return model.Transcript{
			VideoID:   videoID,
			Available: false,
			Segments:  []model.TranscriptSegment{},
			FetchedAt: time.Now(),
			Error:     err.Error(),
		}
	}

	s.toCache(ctx, videoID, transcript)
	return transcript
}

func (s *TranscriptService) fetch(ctx context.Context, videoID string) (model.Transcript, error) {
	if s.config.BaseURL == "" {
		return model.Transcript{}, fmt.Errorf("transcript proxy is not configured")
	}

	endpoint := fmt.Sprintf("%s/api/transcript?videoId=%s", s.config.BaseURL, url.QueryEscape(videoID))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return model.Transcript{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return model.Transcript{}, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return model.Transcript{}, fmt.Errorf("transcript proxy error (status %d)", resp.StatusCode)
	}

	var proxy transcriptProxyResponse
	if err := json.Unmarshal(body, &proxy); err != nil {
		return model.Transcript{}, err
	}

	segments := make([]model.TranscriptSegment, 0, len(proxy.Segments))
	for _, seg := range proxy.Segments {
		text := CleanTranscriptText(seg.Text)
		if text == "" {
			continue
		}
		segments = append(segments, model.TranscriptSegment{
			Start:    seg.Start,
			Duration: seg.Duration,
			Text:     text,
		})
	}

	return model.Transcript{
		VideoID:   videoID,
		Available: len(segments) > 0,
		Segments:  segments,
		Language:  proxy.Language,
		FetchedAt: time.Now(),
	}, nil
}

// CleanTranscriptText 去掉 [Music] 之类的标注、HTML 实体残留和多余空白
func CleanTranscriptText(text string) string {
	text = bracketedAnnotations.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = collapsedWhitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func (s *TranscriptService) fromCache(ctx context.Context, videoID string) (model.Transcript, bool) {
	if s.rdb == nil {
		return model.Transcript{}, false
	}

	val, err := s.rdb.Get(ctx, transcriptCacheKeyPrefix+videoID).Result()
	if err != nil {
		return model.Transcript{}, false
	}

	var transcript model.Transcript
	if err := json.Unmarshal([]byte(val), &transcript); err != nil {
		return model.Transcript{}, false
	}
	return transcript, true
}

func (s *TranscriptService) toCache(ctx context.Context, videoID string, transcript model.Transcript) {
	if s.rdb == nil || !transcript.Available {
		return
	}

	data, err := json.Marshal(transcript)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, transcriptCacheKeyPrefix+videoID, data, s.config.CacheTTL).Err(); err != nil {
		logger.Log.Warn("字幕缓存写入失败", zap.String("videoId", videoID), zap.Error(err))
	}
}
