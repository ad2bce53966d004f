package model

import "time"

// 资源类型（resource.type 的已知取值）
const (
	TypeVideo              = "video"
	TypeBook               = "book"
	TypeAcademicCourse     = "academic_course"
	TypeGovernmentResource = "government_resource"
	TypeArticle            = "article"
	TypePodcast            = "podcast"
	TypeCertification      = "certification"
)

// 来源分类（ResearchResults 的 key，与评分权重表一一对应）
const (
	CategoryAcademic       = "academic"
	CategoryVideos         = "videos"
	CategoryBooks          = "books"
	CategoryPodcasts       = "podcasts"
	CategoryGovernment     = "government"
	CategoryCertifications = "certifications"
	CategoryArticles       = "articles"
)

// Resource 单个可发现的学习资源
// RelevanceScore 等匹配字段用指针区分"缺失"与"为 0"
type Resource struct {
	URL            string   `json:"url"`
	Title          string   `json:"title"`
	Type           string   `json:"type,omitempty"`
	Creator        string   `json:"creator,omitempty"`
	EstimatedCost  string   `json:"estimatedCost,omitempty"`
	RelevanceScore *float64 `json:"relevanceScore,omitempty"`

	// 目标匹配（Objective Matcher 回填，未匹配到的条目保持缺失）
	MatchedObjectives []int    `json:"matchedObjectives,omitempty"`
	MatchedConcepts   []string `json:"matchedConcepts,omitempty"`
	Reasoning         string   `json:"reasoning,omitempty"`

	// 校验结果（Resource Verifier 回填）
	Verified           bool                `json:"verified"`
	VerificationStatus *VerificationStatus `json:"verificationStatus,omitempty"`
	QualityScore       float64             `json:"qualityScore"`
	QualityAssessment  *QualityAssessment  `json:"qualityAssessment,omitempty"`
}

// Relevance 返回相关性得分，缺失时取默认值 0.5
func (r *Resource) Relevance() float64 {
	if r.RelevanceScore == nil {
		return 0.5
	}
	return *r.RelevanceScore
}

type VerificationStatus struct {
	URLAccessible    bool      `json:"urlAccessible"`
	ContentAvailable bool      `json:"contentAvailable"`
	LastChecked      time.Time `json:"lastChecked"`
	StatusCode       int       `json:"statusCode,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// QualityAssessment 四个维度的单项得分与加权总分
type QualityAssessment struct {
	Credibility   float64 `json:"credibility"`
	Relevance     float64 `json:"relevance"`
	Currency      float64 `json:"currency"`
	Accessibility float64 `json:"accessibility"`
	Overall       float64 `json:"overall"`
}

// ResearchResults 分类 → 资源列表
type ResearchResults map[string][]Resource

// VerifiedResults 校验后的资源集合与累计统计
type VerifiedResults struct {
	Resources     ResearchResults `json:"resources"`
	VerifiedCount int             `json:"verifiedCount"`
	FailedCount   int             `json:"failedCount"`
	Warnings      []string        `json:"warnings,omitempty"`
}

type CategoryStat struct {
	Total          int     `json:"total"`
	Verified       int     `json:"verified"`
	AverageQuality float64 `json:"averageQuality"`
}

// QualityReport 校验结果的聚合质量报告
type QualityReport struct {
	TotalResources      int                     `json:"totalResources"`
	VerifiedResources   int                     `json:"verifiedResources"`
	AverageQualityScore float64                 `json:"averageQualityScore"`
	Categories          map[string]CategoryStat `json:"categories"`
	Recommendations     []string                `json:"recommendations,omitempty"`
}
