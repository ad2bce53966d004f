package model

import "time"

type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Transcript 视频字幕。上游失败时 Available=false 且 Error 带原因，
// 调用方不会收到裸错误
type Transcript struct {
	VideoID   string              `json:"videoId"`
	Available bool                `json:"available"`
	Segments  []TranscriptSegment `json:"segments"`
	Language  string              `json:"language,omitempty"`
	FetchedAt time.Time           `json:"fetchedAt"`
	Error     string              `json:"error,omitempty"`
}

// FullText 拼接所有分段文本
func (t *Transcript) FullText() string {
	out := ""
	for i, seg := range t.Segments {
		if i > 0 {
			out += " "
		}
		out += seg.Text
	}
	return out
}
