package service

import (
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/util"
	"strconv"
	"strings"
)

// QualityWeights 单个来源分类的四维权重，总和为 1.0
type QualityWeights struct {
	Credibility   float64
	Relevance     float64
	Currency      float64
	Accessibility float64
}

// 分类 → 权重表。未知分类统一用 defaultWeights（各 0.25）
var qualityWeightTable = map[string]QualityWeights{
	model.CategoryAcademic:       {Credibility: 0.4, Relevance: 0.3, Currency: 0.2, Accessibility: 0.1},
	model.CategoryGovernment:     {Credibility: 0.5, Relevance: 0.2, Currency: 0.2, Accessibility: 0.1},
	model.CategoryCertifications: {Credibility: 0.4, Relevance: 0.3, Currency: 0.2, Accessibility: 0.1},
	model.CategoryBooks:          {Credibility: 0.3, Relevance: 0.3, Currency: 0.2, Accessibility: 0.2},
	model.CategoryVideos:         {Credibility: 0.2, Relevance: 0.4, Currency: 0.2, Accessibility: 0.2},
	model.CategoryArticles:       {Credibility: 0.3, Relevance: 0.3, Currency: 0.3, Accessibility: 0.1},
	model.CategoryPodcasts:       {Credibility: 0.3, Relevance: 0.3, Currency: 0.2, Accessibility: 0.2},
}

var defaultWeights = QualityWeights{Credibility: 0.25, Relevance: 0.25, Currency: 0.25, Accessibility: 0.25}

// YouTube 上公认的教育频道，创作者名命中即提升可信度
var educationalChannels = []string{
	"khan academy",
	"3blue1brown",
	"crash course",
	"ted-ed",
}

// QualityAssessor 对单个资源按四个维度打分并按分类权重加权汇总
// 纯计算，不发网络请求
type QualityAssessor struct{}

func NewQualityAssessor() *QualityAssessor {
	return &QualityAssessor{}
}

// GetQualityWeights 返回分类的权重，未知分类回退到均等权重
func (a *QualityAssessor) GetQualityWeights(sourceType string) QualityWeights {
	if w, ok := qualityWeightTable[sourceType]; ok {
		return w
	}
	return defaultWeights
}

// AssessCredibility 按 URL 和创作者匹配固定的权威列表
// 规则按声明顺序取首个命中
func (a *QualityAssessor) AssessCredibility(resource *model.Resource) float64 {
	url := strings.ToLower(resource.URL)
	creator := strings.ToLower(resource.Creator)

	switch {
	case strings.Contains(url, ".gov") || strings.Contains(url, ".edu"):
		return 1.0
	case strings.Contains(url, "coursera") || strings.Contains(url, "edx") ||
		strings.Contains(url, "udacity") || strings.Contains(url, "mit.edu"):
		return 0.9
	case strings.Contains(url, "amazon") || strings.Contains(url, "springer"):
		return 0.8
	case strings.Contains(url, "youtube"):
		for _, channel := range educationalChannels {
			if strings.Contains(creator, channel) {
				return 0.8
			}
		}
		return 0.6
	case strings.Contains(url, "medium") || strings.Contains(url, "towardsdatascience"):
		return 0.6
	default:
		return 0.5
	}
}

// AssessCurrency 按资源类型取固定时效分
// 没有真实的日期解析，是有意的简化
func (a *QualityAssessor) AssessCurrency(resource *model.Resource) float64 {
	switch resource.Type {
	case model.TypeGovernmentResource:
		return 0.9
	case model.TypeAcademicCourse:
		return 0.8
	case model.TypeBook:
		return 0.7
	case model.TypeVideo:
		return 0.6
	default:
		return 0.7
	}
}

// AssessAccessibility 按成本分档：免费 1.0，价格越高分越低，未知 0.5
func (a *QualityAssessor) AssessAccessibility(resource *model.Resource) float64 {
	cost := resource.EstimatedCost

	if cost == "Free" || cost == "$0" {
		return 1.0
	}

	if strings.Contains(cost, "$") {
		amount := parseCostAmount(cost)
		switch {
		case amount < 50:
			return 0.8
		case amount < 200:
			return 0.6
		case amount < 1000:
			return 0.4
		default:
			return 0.2
		}
	}

	// 成本未知或浮动
	return 0.5
}

// AssessQuality 四维得分与分类权重的点积，保留两位小数
// 任何输入都返回 [0,1] 内的有限值
func (a *QualityAssessor) AssessQuality(resource *model.Resource, sourceType string) model.QualityAssessment {
	weights := a.GetQualityWeights(sourceType)

	assessment := model.QualityAssessment{
		Credibility:   a.AssessCredibility(resource),
		Relevance:     resource.Relevance(),
		Currency:      a.AssessCurrency(resource),
		Accessibility: a.AssessAccessibility(resource),
	}

	assessment.Overall = util.Round2(
		assessment.Credibility*weights.Credibility +
			assessment.Relevance*weights.Relevance +
			assessment.Currency*weights.Currency +
			assessment.Accessibility*weights.Accessibility,
	)

	return assessment
}

// parseCostAmount 提取价格字符串中的数字部分，如 "$49.99/month" → 49.99
func parseCostAmount(cost string) float64 {
	var b strings.Builder
	for _, r := range cost {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	amount, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return amount
}
