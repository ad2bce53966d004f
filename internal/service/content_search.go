package service

import (
	"context"
	"encoding/json"
	"fmt"
	"learnpath_backend/internal/model"
	"learnpath_backend/pkg/logger"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// SearchOptions 单次内容搜索的参数
type SearchOptions struct {
	Level      string
	MaxResults int
}

// ContentSearcher 外部注入的内容搜索能力
// 返回条目至少带 title，其余字段（url/type/creator/cost）由质量评估消费
type ContentSearcher interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]model.Resource, error)
}

// ContentFinder 按阶段搜索内容并做目标匹配
type ContentFinder struct {
	searcher   ContentSearcher
	ai         *AIService
	maxResults int
}

func NewContentFinder(searcher ContentSearcher, ai *AIService, maxResults int) *ContentFinder {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &ContentFinder{searcher: searcher, ai: ai, maxResults: maxResults}
}

// stageLevel 阶段标题 → 搜索难度。未知标题与小时数映射用同一个兜底分支
func stageLevel(title string) string {
	switch title {
	case model.StageFundamentals:
		return model.LevelBeginner
	case model.StageReinforcement, model.StagePractical:
		return model.LevelIntermediate
	default:
		return model.LevelAdvanced
	}
}

// buildStageQuery topic + 关键概念名 + 阶段标题
func buildStageQuery(structure *model.LearningPathStructure, stage *model.Stage) string {
	parts := []string{structure.Topic}
	for _, kc := range stage.KeyConcepts {
		parts = append(parts, kc.Concept)
	}
	parts = append(parts, stage.Title)
	return strings.Join(parts, " ")
}

// SearchContentForStages 每个阶段一个并发搜索任务，全部完成后汇合
// 单个阶段失败只影响它自己，返回空内容，不取消兄弟任务
// 结果顺序不保证与阶段顺序一致，下游按 stageId 对齐
func (f *ContentFinder) SearchContentForStages(ctx context.Context, structure *model.LearningPathStructure) []model.StageContent {
	results := make([]model.StageContent, len(structure.Stages))

	var wg sync.WaitGroup
	for i := range structure.Stages {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stage := &structure.Stages[i]

			content, err := f.searcher.Search(ctx, buildStageQuery(structure, stage), SearchOptions{
				Level:      stageLevel(stage.Title),
				MaxResults: f.maxResults,
			})
			if err != nil {
				logger.Log.Warn("阶段内容搜索失败",
					zap.Int("stageId", stage.ID), zap.String("title", stage.Title), zap.Error(err))
				content = []model.Resource{}
			}

			results[i] = model.StageContent{StageID: stage.ID, Content: content}
		}(i)
	}
	wg.Wait()

	return results
}

// contentMatch AI 返回的单条匹配结果，按 contentIndex 对齐回内容条目
type contentMatch struct {
	ContentIndex      int      `json:"contentIndex"`
	RelevanceScore    float64  `json:"relevanceScore"`
	MatchedObjectives []int    `json:"matchedObjectives"`
	MatchedConcepts   []string `json:"matchedConcepts"`
	Reasoning         string   `json:"reasoning"`
}

// MatchContentToObjectives 为阶段内容批量打相关性分并按分降序排
// 未配置 AI 或内容为空时原样返回且不发请求；请求/解析失败也原样返回
func (f *ContentFinder) MatchContentToObjectives(ctx context.Context, stage *model.Stage, content []model.Resource) []model.Resource {
	if !f.ai.Configured() || len(content) == 0 {
		return content
	}

	response, err := f.ai.Chat(ctx, "match_objectives", buildMatchPrompt(stage, content))
	if err != nil {
		logger.Log.Warn("目标匹配请求失败", zap.Int("stageId", stage.ID), zap.Error(err))
		return content
	}

	var matches []contentMatch
	if err := json.Unmarshal([]byte(ExtractJSON(response)), &matches); err != nil {
		logger.Log.Warn("目标匹配结果解析失败", zap.Int("stageId", stage.ID), zap.Error(err))
		return content
	}

	matched := make([]model.Resource, len(content))
	copy(matched, content)

	for _, m := range matches {
		if m.ContentIndex < 0 || m.ContentIndex >= len(matched) {
			continue
		}
		item := &matched[m.ContentIndex]
		score := m.RelevanceScore
		item.RelevanceScore = &score
		item.MatchedObjectives = m.MatchedObjectives
		item.MatchedConcepts = m.MatchedConcepts
		item.Reasoning = m.Reasoning
	}

	// 稳定排序：无分数按 0 处理，同分保持相对顺序
	sort.SliceStable(matched, func(i, j int) bool {
		var si, sj float64
		if matched[i].RelevanceScore != nil {
			si = *matched[i].RelevanceScore
		}
		if matched[j].RelevanceScore != nil {
			sj = *matched[j].RelevanceScore
		}
		return si > sj
	})

	return matched
}

func buildMatchPrompt(stage *model.Stage, content []model.Resource) string {
	var b strings.Builder

	b.WriteString("Score how well each content item supports the learning objectives and key concepts of this stage.\n\n")
	fmt.Fprintf(&b, "Stage: %s\n", stage.Title)

	b.WriteString("Learning objectives:\n")
	for i, obj := range stage.LearningObjectives {
		fmt.Fprintf(&b, "%d. %s\n", i, obj)
	}

	b.WriteString("Key concepts:\n")
	for _, kc := range stage.KeyConcepts {
		fmt.Fprintf(&b, "- %s\n", kc.Concept)
	}

	b.WriteString("\nContent items:\n")
	for i, item := range content {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i, item.Title, item.Creator)
	}

	b.WriteString(`
Respond with ONLY a JSON array, one entry per content item:
[{"contentIndex": 0, "relevanceScore": 0.0, "matchedObjectives": [0], "matchedConcepts": ["string"], "reasoning": "string"}]
relevanceScore is between 0 and 1.`)

	return b.String()
}
