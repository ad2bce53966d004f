package service

import (
	"fmt"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/util"
	"time"
)

// 一个阶段至少要有这么多资源才算"完成"
// 该阈值与校验/质量过滤无关
const completeStageMinResources = 3

// AssembleKnowledgePath 把阶段骨架与各阶段搜到的内容合并为知识路径
// 内容按 stageId 查找，与下标顺序无关；元数据由这里独家计算
func AssembleKnowledgePath(structure *model.LearningPathStructure, stageContent []model.StageContent) model.KnowledgePath {
	contentByStage := make(map[int][]model.Resource, len(stageContent))
	for _, sc := range stageContent {
		contentByStage[sc.StageID] = sc.Content
	}

	stages := make([]model.PathStage, len(structure.Stages))
	totalResources := 0
	completedStages := 0
	var missingStages []string

	for i, stage := range structure.Stages {
		resources := contentByStage[stage.ID]
		if resources == nil {
			resources = []model.Resource{}
		}

		status := model.StageStatusIncomplete
		if len(resources) > 0 {
			status = model.StageStatusComplete
		}

		stages[i] = model.PathStage{
			Stage:         stage,
			Resources:     resources,
			ResourceCount: len(resources),
			Status:        status,
		}

		totalResources += len(resources)
		if len(resources) >= completeStageMinResources {
			completedStages++
		} else {
			missingStages = append(missingStages, stage.Title)
		}
	}

	score := 0.0
	if len(stages) > 0 {
		score = util.Round2(float64(completedStages) / float64(len(stages)))
	}

	return model.KnowledgePath{
		Topic:               structure.Topic,
		TotalEstimatedHours: structure.TotalEstimatedHours,
		Difficulty:          structure.Difficulty,
		Prerequisites:       structure.Prerequisites,
		Stages:              stages,
		LearningOutcomes:    structure.LearningOutcomes,
		CareerApplications:  structure.CareerApplications,
		NextSteps:           structure.NextSteps,
		Metadata: model.PathMetadata{
			CreatedAt:      time.Now(),
			TotalResources: totalResources,
			Completeness: model.Completeness{
				Score:           score,
				CompletedStages: completedStages,
				TotalStages:     len(stages),
				Rating:          completenessRating(score),
				MissingStages:   missingStages,
			},
		},
	}
}

// completenessRating 分档下界包含：0.9 Excellent，0.7 Good，0.5 Fair
func completenessRating(score float64) string {
	switch {
	case score >= 0.9:
		return "Excellent"
	case score >= 0.7:
		return "Good"
	case score >= 0.5:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// GeneratePathSummary 组装结果的纯投影，不做新计算
func GeneratePathSummary(path *model.KnowledgePath) model.PathSummary {
	stages := make([]model.StageSummary, len(path.Stages))
	for i, stage := range path.Stages {
		stages[i] = model.StageSummary{
			ID:             stage.ID,
			Title:          stage.Title,
			EstimatedHours: stage.EstimatedHours,
			ResourceCount:  stage.ResourceCount,
			Status:         stage.Status,
		}
	}

	return model.PathSummary{
		Title: fmt.Sprintf("%s Learning Path", path.Topic),
		Overview: fmt.Sprintf("A %d-stage %s path covering %s, estimated at %d hours.",
			len(path.Stages), path.Difficulty, path.Topic, path.TotalEstimatedHours),
		Difficulty:       path.Difficulty,
		TotalHours:       path.TotalEstimatedHours,
		TotalResources:   path.Metadata.TotalResources,
		Completeness:     path.Metadata.Completeness.Rating,
		Stages:           stages,
		LearningOutcomes: path.LearningOutcomes,
		NextSteps:        path.NextSteps,
	}
}
