package service

import (
	"context"
	"encoding/json"
	"fmt"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newChatServer 返回一个 chat/completions 假服务，响应内容由 content 给定
func newChatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		resp := ChatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message AIChatMessage `json:"message"`
		}{Message: AIChatMessage{Role: "assistant", Content: content}})
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestAI(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "test-model",
	})
}

func validStructureJSON() string {
	structure := model.LearningPathStructure{
		Topic:               "Go Programming",
		TotalEstimatedHours: 36,
		Difficulty:          model.LevelIntermediate,
		Stages: []model.Stage{
			{ID: 1, Title: model.StageFundamentals, EstimatedHours: 9},
			{ID: 2, Title: model.StageReinforcement, EstimatedHours: 9},
			{ID: 3, Title: model.StagePractical, EstimatedHours: 9},
			{ID: 4, Title: model.StageAdvancedMastery, EstimatedHours: 9},
		},
	}
	data, _ := json.Marshal(structure)
	return string(data)
}

func TestDesignStructureWithoutCredentials(t *testing.T) {
	d := NewPathDesigner(NewAIService(config.AIConfig{}))

	got := d.DesignStructure(context.Background(), "Go Programming", "", model.LevelBeginner)

	assert.Equal(t, model.StructureSourceFallback, got.Source)
	assert.Equal(t, "Go Programming", got.Structure.Topic)
	require.Len(t, got.Structure.Stages, 4)
}

func TestDesignStructureWithAI(t *testing.T) {
	t.Run("valid response marked as ai", func(t *testing.T) {
		srv := newChatServer(t, validStructureJSON())
		defer srv.Close()

		d := NewPathDesigner(newTestAI(srv.URL))
		got := d.DesignStructure(context.Background(), "Go Programming", "desc", model.LevelIntermediate)

		assert.Equal(t, model.StructureSourceAI, got.Source)
		assert.Equal(t, 36, got.Structure.TotalEstimatedHours)
		require.Len(t, got.Structure.Stages, 4)
		assert.Equal(t, model.StageFundamentals, got.Structure.Stages[0].Title)
	})

	t.Run("fenced json is accepted", func(t *testing.T) {
		srv := newChatServer(t, "```json\n"+validStructureJSON()+"\n```")
		defer srv.Close()

		d := NewPathDesigner(newTestAI(srv.URL))
		got := d.DesignStructure(context.Background(), "Go Programming", "", model.LevelIntermediate)

		assert.Equal(t, model.StructureSourceAI, got.Source)
	})

	t.Run("malformed json falls back", func(t *testing.T) {
		srv := newChatServer(t, "I would suggest starting with the basics...")
		defer srv.Close()

		d := NewPathDesigner(newTestAI(srv.URL))
		got := d.DesignStructure(context.Background(), "Go Programming", "", model.LevelBeginner)

		assert.Equal(t, model.StructureSourceFallback, got.Source)
		require.Len(t, got.Structure.Stages, 4)
	})

	t.Run("structure missing stages falls back", func(t *testing.T) {
		srv := newChatServer(t, `{"topic": "Go Programming", "stages": []}`)
		defer srv.Close()

		d := NewPathDesigner(newTestAI(srv.URL))
		got := d.DesignStructure(context.Background(), "Go Programming", "", model.LevelBeginner)

		assert.Equal(t, model.StructureSourceFallback, got.Source)
	})

	t.Run("upstream error falls back", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		d := NewPathDesigner(newTestAI(srv.URL))
		got := d.DesignStructure(context.Background(), "Go Programming", "", model.LevelAdvanced)

		assert.Equal(t, model.StructureSourceFallback, got.Source)
		assert.Equal(t, 60, got.Structure.TotalEstimatedHours)
	})
}

func TestFallbackStructure(t *testing.T) {
	d := NewPathDesigner(NewAIService(config.AIConfig{}))

	tests := []struct {
		level         string
		expectedHours int
	}{
		{model.LevelBeginner, 20},
		{model.LevelIntermediate, 40},
		{model.LevelAdvanced, 60},
		{"expert", 60},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("level %s", tt.level), func(t *testing.T) {
			got := d.FallbackStructure("Machine Learning", tt.level)

			assert.Equal(t, tt.expectedHours, got.TotalEstimatedHours)
			assert.Equal(t, tt.level, got.Difficulty)
			require.Len(t, got.Stages, 4)

			// 阶段小时数加总必须等于路径总时长
			sum := 0
			for _, stage := range got.Stages {
				sum += stage.EstimatedHours
			}
			assert.Equal(t, tt.expectedHours, sum)
		})
	}

	t.Run("stage titles follow the fixed order", func(t *testing.T) {
		got := d.FallbackStructure("Machine Learning", model.LevelBeginner)

		assert.Equal(t, model.StageFundamentals, got.Stages[0].Title)
		assert.Equal(t, model.StageReinforcement, got.Stages[1].Title)
		assert.Equal(t, model.StagePractical, got.Stages[2].Title)
		assert.Equal(t, model.StageAdvancedMastery, got.Stages[3].Title)

		for i, stage := range got.Stages {
			assert.Equal(t, i+1, stage.ID)
			assert.NotEmpty(t, stage.LearningObjectives)
			assert.NotEmpty(t, stage.KeyConcepts)
			assert.NotEmpty(t, stage.AssessmentCheckpoint)
		}
	})

	t.Run("topic is woven into stage descriptions", func(t *testing.T) {
		got := d.FallbackStructure("Machine Learning", model.LevelBeginner)
		for _, stage := range got.Stages {
			assert.Contains(t, stage.Description, "Machine Learning")
		}
	})
}
