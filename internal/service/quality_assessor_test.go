package service

import (
	"learnpath_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestGetQualityWeights(t *testing.T) {
	a := NewQualityAssessor()

	t.Run("known categories sum to one", func(t *testing.T) {
		for _, category := range []string{
			model.CategoryAcademic, model.CategoryGovernment, model.CategoryCertifications,
			model.CategoryBooks, model.CategoryVideos, model.CategoryArticles, model.CategoryPodcasts,
		} {
			w := a.GetQualityWeights(category)
			sum := w.Credibility + w.Relevance + w.Currency + w.Accessibility
			assert.InDelta(t, 1.0, sum, 1e-9, "category %s", category)
		}
	})

	t.Run("unknown category falls back to equal weights", func(t *testing.T) {
		w := a.GetQualityWeights("newsletters")
		assert.Equal(t, QualityWeights{Credibility: 0.25, Relevance: 0.25, Currency: 0.25, Accessibility: 0.25}, w)
	})

	t.Run("videos favor relevance", func(t *testing.T) {
		w := a.GetQualityWeights(model.CategoryVideos)
		assert.Equal(t, 0.4, w.Relevance)
		assert.Equal(t, 0.2, w.Credibility)
	})
}

func TestAssessCredibility(t *testing.T) {
	a := NewQualityAssessor()

	tests := []struct {
		name     string
		url      string
		creator  string
		expected float64
	}{
		{"edu domain", "https://ocw.mit.edu/courses/intro", "", 1.0},
		{"gov domain", "https://www.nasa.gov/learn", "", 1.0},
		{"edu outranks course platform", "https://cs.stanford.edu/coursera-partnership", "", 1.0},
		{"coursera", "https://www.coursera.org/learn/ml", "", 0.9},
		{"edx", "https://www.edx.org/course/python", "", 0.9},
		{"amazon book listing", "https://www.amazon.com/dp/0134685997", "", 0.8},
		{"springer", "https://link.springer.com/book/123", "", 0.8},
		{"youtube educational channel", "https://www.youtube.com/watch?v=abc", "Khan Academy", 0.8},
		{"youtube educational channel case insensitive", "https://WWW.YOUTUBE.COM/watch?v=abc", "3Blue1Brown", 0.8},
		{"youtube unknown channel", "https://www.youtube.com/watch?v=abc", "Random Uploads", 0.6},
		{"medium", "https://medium.com/@someone/post", "", 0.6},
		{"towardsdatascience", "https://towardsdatascience.com/post", "", 0.6},
		{"unknown site", "https://example.com/tutorial", "", 0.5},
		{"empty url", "", "", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := model.Resource{URL: tt.url, Creator: tt.creator}
			assert.Equal(t, tt.expected, a.AssessCredibility(&res))
		})
	}
}

func TestAssessCurrency(t *testing.T) {
	a := NewQualityAssessor()

	tests := []struct {
		resourceType string
		expected     float64
	}{
		{model.TypeGovernmentResource, 0.9},
		{model.TypeAcademicCourse, 0.8},
		{model.TypeBook, 0.7},
		{model.TypeVideo, 0.6},
		{model.TypeArticle, 0.7},
		{"", 0.7},
	}

	for _, tt := range tests {
		res := model.Resource{Type: tt.resourceType}
		assert.Equal(t, tt.expected, a.AssessCurrency(&res), "type %q", tt.resourceType)
	}
}

func TestAssessAccessibility(t *testing.T) {
	a := NewQualityAssessor()

	tests := []struct {
		cost     string
		expected float64
	}{
		{"Free", 1.0},
		{"$0", 1.0},
		{"$29.99", 0.8},
		{"$49.99/month", 0.8},
		{"$50", 0.6},
		{"$199", 0.6},
		{"$200", 0.4},
		{"$999", 0.4},
		{"$1000", 0.2},
		{"$2500 per seat", 0.2},
		{"", 0.5},
		{"Varies", 0.5},
	}

	for _, tt := range tests {
		res := model.Resource{EstimatedCost: tt.cost}
		assert.Equal(t, tt.expected, a.AssessAccessibility(&res), "cost %q", tt.cost)
	}
}

func TestAssessQuality(t *testing.T) {
	a := NewQualityAssessor()

	t.Run("free mit academic course", func(t *testing.T) {
		res := model.Resource{
			URL:            "https://ocw.mit.edu/courses/6-006",
			Type:           model.TypeAcademicCourse,
			EstimatedCost:  "Free",
			RelevanceScore: floatPtr(0.9),
		}

		got := a.AssessQuality(&res, model.CategoryAcademic)

		require.Equal(t, 1.0, got.Credibility)
		require.Equal(t, 0.9, got.Relevance)
		require.Equal(t, 0.8, got.Currency)
		require.Equal(t, 1.0, got.Accessibility)
		// 0.4*1.0 + 0.3*0.9 + 0.2*0.8 + 0.1*1.0
		assert.Equal(t, 0.93, got.Overall)
	})

	t.Run("missing relevance defaults to 0.5", func(t *testing.T) {
		res := model.Resource{URL: "https://example.com"}
		got := a.AssessQuality(&res, "unknown-category")

		assert.Equal(t, 0.5, got.Relevance)
		// 均等权重：(0.5 + 0.5 + 0.7 + 0.5) * 0.25
		assert.Equal(t, 0.55, got.Overall)
	})

	t.Run("overall stays within unit interval", func(t *testing.T) {
		res := model.Resource{
			URL:            "https://www.nasa.gov",
			Type:           model.TypeGovernmentResource,
			EstimatedCost:  "Free",
			RelevanceScore: floatPtr(1.0),
		}
		got := a.AssessQuality(&res, model.CategoryGovernment)
		assert.LessOrEqual(t, got.Overall, 1.0)
		assert.GreaterOrEqual(t, got.Overall, 0.0)
	})
}

func TestParseCostAmount(t *testing.T) {
	assert.Equal(t, 49.99, parseCostAmount("$49.99/month"))
	assert.Equal(t, 1200.0, parseCostAmount("$1200"))
	assert.Equal(t, 0.0, parseCostAmount("contact sales"))
}
