package model

// Highlight 视频中的一个重点片段
type Highlight struct {
	Timestamp  string   `json:"timestamp"`
	Reason     string   `json:"reason"`
	Concepts   []string `json:"concepts,omitempty"`
	Importance string   `json:"importance,omitempty"`
}

// VideoAnalysis 学习要点分析，导出模块消费的唯一分析形态
type VideoAnalysis struct {
	Summary       string      `json:"summary"`
	KeyLearnings  []string    `json:"keyLearnings"`
	Highlights    []Highlight `json:"highlights,omitempty"`
	Prerequisites []string    `json:"prerequisites,omitempty"`
	NextSteps     []string    `json:"nextSteps,omitempty"`
}

type VideoInfo struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Creator string `json:"creator,omitempty"`
	URL     string `json:"url,omitempty"`
}
