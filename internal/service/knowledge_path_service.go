package service

import (
	"context"
	"encoding/json"
	"fmt"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/repository"
	"learnpath_backend/internal/util"
	"learnpath_backend/pkg/logger"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const structureCacheKeyPrefix = "structure:"
const structureCacheTTL = 6 * time.Hour

// KnowledgePathService 两级流水线的编排入口：
// 结构设计 → 各阶段并发搜索 → 各阶段并发目标匹配 → （可选）校验过滤 → 组装
type KnowledgePathService struct {
	designer        *PathDesigner
	finder          *ContentFinder
	verifier        *ResourceVerifier
	repo            *repository.PathRepository
	rdb             *redis.Client
	minQualityScore float64
}

func NewKnowledgePathService(
	designer *PathDesigner,
	finder *ContentFinder,
	verifier *ResourceVerifier,
	repo *repository.PathRepository,
	rdb *redis.Client,
	minQualityScore float64,
) *KnowledgePathService {
	if minQualityScore <= 0 {
		minQualityScore = 0.5
	}
	return &KnowledgePathService{
		designer:        designer,
		finder:          finder,
		verifier:        verifier,
		repo:            repo,
		rdb:             rdb,
		minQualityScore: minQualityScore,
	}
}

type GenerateRequest struct {
	Topic       string `json:"topic" binding:"required"`
	Description string `json:"description"`
	Level       string `json:"level"`
	// Verify 为 true 时对搜到的内容做链接校验和质量过滤
	Verify bool `json:"verify"`
}

type GenerateResult struct {
	ID              string               `json:"id,omitempty"`
	Path            model.KnowledgePath  `json:"path"`
	Summary         model.PathSummary    `json:"summary"`
	StructureSource string               `json:"structureSource"`
	Report          *model.QualityReport `json:"report,omitempty"`
	Warnings        []string             `json:"warnings,omitempty"`
}

// GenerateKnowledgePath 执行完整流水线并持久化结果
// 子步骤失败都被降级吸收，这里只可能因持久化失败报错
func (s *KnowledgePathService) GenerateKnowledgePath(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if req.Topic == "" {
		return nil, util.ErrEmptyTopic
	}

	// 1. 设计四阶段骨架（带缓存：相同主题和难度短期内不重复请求 AI）
	design := s.designStructure(ctx, req)
	structure := design.Structure

	// 2. 各阶段并发搜索内容
	stageContent := s.finder.SearchContentForStages(ctx, &structure)

	// 3. 各阶段并发目标匹配（与搜索相同的扇出方式）
	s.matchAllStages(ctx, &structure, stageContent)

	result := &GenerateResult{StructureSource: design.Source}

	// 4. 可选：校验 + 质量过滤
	if req.Verify {
		report, warnings := s.verifyStageContent(ctx, stageContent)
		result.Report = report
		result.Warnings = warnings
	}

	// 5. 组装
	path := AssembleKnowledgePath(&structure, stageContent)
	summary := GeneratePathSummary(&path)
	result.Path = path
	result.Summary = summary

	// 6. 持久化快照
	if s.repo != nil {
		record, err := s.saveRecord(&path, &summary, design.Source)
		if err != nil {
			return nil, err
		}
		result.ID = record.ID
	}

	return result, nil
}

func (s *KnowledgePathService) designStructure(ctx context.Context, req *GenerateRequest) DesignResult {
	cacheKey := fmt.Sprintf("%s%s:%s", structureCacheKeyPrefix, req.Topic, req.Level)

	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached DesignResult
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached
			}
		}
	}

	design := s.designer.DesignStructure(ctx, req.Topic, req.Description, req.Level)

	// 回退模板不值得缓存，AI 结果缓存 6 小时
	if s.rdb != nil && design.Source == model.StructureSourceAI {
		if data, err := json.Marshal(design); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, data, structureCacheTTL).Err(); err != nil {
				logger.Log.Warn("结构缓存写入失败", zap.String("topic", req.Topic), zap.Error(err))
			}
		}
	}

	return design
}

// matchAllStages 按阶段并发做目标匹配，失败的阶段保持原内容
func (s *KnowledgePathService) matchAllStages(ctx context.Context, structure *model.LearningPathStructure, stageContent []model.StageContent) {
	stageByID := make(map[int]*model.Stage, len(structure.Stages))
	for i := range structure.Stages {
		stageByID[structure.Stages[i].ID] = &structure.Stages[i]
	}

	var wg sync.WaitGroup
	for i := range stageContent {
		stage, ok := stageByID[stageContent[i].StageID]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(i int, stage *model.Stage) {
			defer wg.Done()
			stageContent[i].Content = s.finder.MatchContentToObjectives(ctx, stage, stageContent[i].Content)
		}(i, stage)
	}
	wg.Wait()
}

// verifyStageContent 把各阶段内容按 videos 分类送校验，过滤后原位写回
// 校验输出与输入逐下标对齐，所以能按数量切回各阶段
func (s *KnowledgePathService) verifyStageContent(ctx context.Context, stageContent []model.StageContent) (*model.QualityReport, []string) {
	all := make([]model.Resource, 0)
	counts := make([]int, len(stageContent))
	for i, sc := range stageContent {
		counts[i] = len(sc.Content)
		all = append(all, sc.Content...)
	}

	verified := s.verifier.VerifyResources(ctx, model.ResearchResults{model.CategoryVideos: all})
	report := GenerateQualityReport(&verified)

	// 过滤会丢条目，这里按原始数量切片后逐阶段套用同一保留条件
	verifiedAll := verified.Resources[model.CategoryVideos]
	offset := 0
	for i := range stageContent {
		segment := model.VerifiedResults{Resources: model.ResearchResults{
			model.CategoryVideos: verifiedAll[offset : offset+counts[i]],
		}}
		offset += counts[i]
		stageContent[i].Content = FilterQualityResources(&segment, s.minQualityScore)[model.CategoryVideos]
	}

	return &report, verified.Warnings
}

func (s *KnowledgePathService) saveRecord(path *model.KnowledgePath, summary *model.PathSummary, source string) (*model.KnowledgePathRecord, error) {
	pathJSON, err := json.Marshal(path)
	if err != nil {
		return nil, err
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	record := &model.KnowledgePathRecord{
		Topic:           path.Topic,
		Difficulty:      path.Difficulty,
		StructureSource: source,
		Rating:          path.Metadata.Completeness.Rating,
		TotalResources:  path.Metadata.TotalResources,
		CompletenessVal: path.Metadata.Completeness.Score,
		PathJSON:        string(pathJSON),
		SummaryJSON:     string(summaryJSON),
	}

	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetPath 读取持久化的知识路径
func (s *KnowledgePathService) GetPath(id string) (*model.KnowledgePath, *model.PathSummary, error) {
	record, err := s.repo.FindByID(id)
	if err != nil {
		return nil, nil, util.ErrPathNotFound
	}

	var path model.KnowledgePath
	if err := json.Unmarshal([]byte(record.PathJSON), &path); err != nil {
		return nil, nil, err
	}

	var summary model.PathSummary
	if err := json.Unmarshal([]byte(record.SummaryJSON), &summary); err != nil {
		return nil, nil, err
	}

	return &path, &summary, nil
}

// ListPaths 分页列出已生成的路径快照
func (s *KnowledgePathService) ListPaths(topic string, page, limit int) ([]model.KnowledgePathRecord, int64, error) {
	return s.repo.List(topic, page, limit)
}

func (s *KnowledgePathService) DeletePath(id string) error {
	return s.repo.DeleteByID(id)
}
