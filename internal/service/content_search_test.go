package service

import (
	"context"
	"fmt"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/model"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher 记录收到的查询，failTitles 命中的阶段返回错误
type fakeSearcher struct {
	mu         sync.Mutex
	queries    []string
	levels     []string
	failLevels map[string]bool
}

func (s *fakeSearcher) Search(_ context.Context, query string, opts SearchOptions) ([]model.Resource, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.levels = append(s.levels, opts.Level)
	s.mu.Unlock()

	if s.failLevels[opts.Level] {
		return nil, fmt.Errorf("search backend unavailable")
	}

	results := make([]model.Resource, 0, opts.MaxResults)
	for i := 0; i < opts.MaxResults; i++ {
		results = append(results, model.Resource{
			Title: fmt.Sprintf("%s #%d", query, i),
			URL:   fmt.Sprintf("https://videos.example.com/%d", i),
		})
	}
	return results, nil
}

func fourStageStructure() *model.LearningPathStructure {
	return &model.LearningPathStructure{
		Topic: "Go Programming",
		Stages: []model.Stage{
			{ID: 1, Title: model.StageFundamentals, KeyConcepts: []model.KeyConcept{{Concept: "syntax"}}},
			{ID: 2, Title: model.StageReinforcement},
			{ID: 3, Title: model.StagePractical},
			{ID: 4, Title: model.StageAdvancedMastery},
		},
	}
}

func TestStageLevel(t *testing.T) {
	assert.Equal(t, model.LevelBeginner, stageLevel(model.StageFundamentals))
	assert.Equal(t, model.LevelIntermediate, stageLevel(model.StageReinforcement))
	assert.Equal(t, model.LevelIntermediate, stageLevel(model.StagePractical))
	assert.Equal(t, model.LevelAdvanced, stageLevel(model.StageAdvancedMastery))
	assert.Equal(t, model.LevelAdvanced, stageLevel("Custom Stage"))
}

func TestBuildStageQuery(t *testing.T) {
	structure := fourStageStructure()
	got := buildStageQuery(structure, &structure.Stages[0])
	assert.Equal(t, "Go Programming syntax Fundamentals", got)
}

func TestSearchContentForStages(t *testing.T) {
	t.Run("every stage gets content aligned by stage id", func(t *testing.T) {
		searcher := &fakeSearcher{}
		f := NewContentFinder(searcher, NewAIService(config.AIConfig{}), 2)

		got := f.SearchContentForStages(context.Background(), fourStageStructure())

		require.Len(t, got, 4)
		for i, sc := range got {
			assert.Equal(t, i+1, sc.StageID)
			assert.Len(t, sc.Content, 2)
		}
	})

	t.Run("failed stage yields empty content without affecting siblings", func(t *testing.T) {
		searcher := &fakeSearcher{failLevels: map[string]bool{model.LevelBeginner: true}}
		f := NewContentFinder(searcher, NewAIService(config.AIConfig{}), 3)

		got := f.SearchContentForStages(context.Background(), fourStageStructure())

		require.Len(t, got, 4)
		assert.Empty(t, got[0].Content)
		assert.NotNil(t, got[0].Content)
		for _, sc := range got[1:] {
			assert.Len(t, sc.Content, 3)
		}
	})

	t.Run("search level follows stage title", func(t *testing.T) {
		searcher := &fakeSearcher{}
		f := NewContentFinder(searcher, NewAIService(config.AIConfig{}), 1)

		f.SearchContentForStages(context.Background(), fourStageStructure())

		assert.ElementsMatch(t, []string{
			model.LevelBeginner, model.LevelIntermediate, model.LevelIntermediate, model.LevelAdvanced,
		}, searcher.levels)
	})
}

func TestMatchContentToObjectives(t *testing.T) {
	stage := &model.Stage{
		ID:                 1,
		Title:              model.StageFundamentals,
		LearningObjectives: []string{"Understand the basics"},
		KeyConcepts:        []model.KeyConcept{{Concept: "syntax"}},
	}

	content := []model.Resource{
		{Title: "Video A", URL: "https://a.example.com"},
		{Title: "Video B", URL: "https://b.example.com"},
		{Title: "Video C", URL: "https://c.example.com"},
	}

	t.Run("passthrough without credentials", func(t *testing.T) {
		f := NewContentFinder(&fakeSearcher{}, NewAIService(config.AIConfig{}), 5)

		got := f.MatchContentToObjectives(context.Background(), stage, content)

		assert.Equal(t, content, got)
	})

	t.Run("passthrough on empty content", func(t *testing.T) {
		srv := newChatServer(t, "should never be called")
		defer srv.Close()

		f := NewContentFinder(&fakeSearcher{}, newTestAI(srv.URL), 5)
		got := f.MatchContentToObjectives(context.Background(), stage, nil)

		assert.Nil(t, got)
	})

	t.Run("merges scores and sorts descending", func(t *testing.T) {
		srv := newChatServer(t, `[
			{"contentIndex": 0, "relevanceScore": 0.4, "matchedObjectives": [0], "matchedConcepts": ["syntax"], "reasoning": "partial"},
			{"contentIndex": 1, "relevanceScore": 0.9, "matchedObjectives": [0], "matchedConcepts": ["syntax"], "reasoning": "strong"},
			{"contentIndex": 2, "relevanceScore": 0.6, "matchedObjectives": [], "matchedConcepts": [], "reasoning": "related"}
		]`)
		defer srv.Close()

		f := NewContentFinder(&fakeSearcher{}, newTestAI(srv.URL), 5)
		got := f.MatchContentToObjectives(context.Background(), stage, content)

		require.Len(t, got, 3)
		assert.Equal(t, "Video B", got[0].Title)
		assert.Equal(t, "Video C", got[1].Title)
		assert.Equal(t, "Video A", got[2].Title)
		require.NotNil(t, got[0].RelevanceScore)
		assert.Equal(t, 0.9, *got[0].RelevanceScore)
		assert.Equal(t, "strong", got[0].Reasoning)
		assert.Equal(t, []int{0}, got[0].MatchedObjectives)

		// 输入切片不被重排
		assert.Equal(t, "Video A", content[0].Title)
	})

	t.Run("unscored items sort as zero but keep order", func(t *testing.T) {
		srv := newChatServer(t, `[{"contentIndex": 2, "relevanceScore": 0.8}]`)
		defer srv.Close()

		f := NewContentFinder(&fakeSearcher{}, newTestAI(srv.URL), 5)
		got := f.MatchContentToObjectives(context.Background(), stage, content)

		require.Len(t, got, 3)
		assert.Equal(t, "Video C", got[0].Title)
		assert.Equal(t, "Video A", got[1].Title)
		assert.Equal(t, "Video B", got[2].Title)
	})

	t.Run("out of range indexes are ignored", func(t *testing.T) {
		srv := newChatServer(t, `[
			{"contentIndex": -1, "relevanceScore": 0.9},
			{"contentIndex": 99, "relevanceScore": 0.9},
			{"contentIndex": 0, "relevanceScore": 0.7}
		]`)
		defer srv.Close()

		f := NewContentFinder(&fakeSearcher{}, newTestAI(srv.URL), 5)
		got := f.MatchContentToObjectives(context.Background(), stage, content)

		require.Len(t, got, 3)
		assert.Equal(t, "Video A", got[0].Title)
	})

	t.Run("unparseable response returns input unchanged", func(t *testing.T) {
		srv := newChatServer(t, "these items all look great to me")
		defer srv.Close()

		f := NewContentFinder(&fakeSearcher{}, newTestAI(srv.URL), 5)
		got := f.MatchContentToObjectives(context.Background(), stage, content)

		assert.Equal(t, content, got)
	})
}
