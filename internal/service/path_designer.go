package service

import (
	"context"
	"encoding/json"
	"fmt"
	"learnpath_backend/internal/model"
	"learnpath_backend/pkg/logger"
	"learnpath_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// DesignResult 路径骨架 + 来源标记
// 调用方据此区分"AI 生成成功"与"使用了回退模板"
type DesignResult struct {
	Structure model.LearningPathStructure `json:"structure"`
	Source    string                      `json:"source"`
}

// PathDesigner 设计四阶段课程骨架
// AI 不可用或失败时回退到静态模板，该调用对外永不报错
type PathDesigner struct {
	ai *AIService
}

func NewPathDesigner(ai *AIService) *PathDesigner {
	return &PathDesigner{ai: ai}
}

// DesignStructure 生成学习路径骨架
// 未配置 AI 凭证时直接返回回退模板，不发任何网络请求
func (d *PathDesigner) DesignStructure(ctx context.Context, topic, description, level string) DesignResult {
	if level == "" {
		level = model.LevelBeginner
	}

	if !d.ai.Configured() {
		monitoring.PathsGenerated.WithLabelValues(model.StructureSourceFallback).Inc()
		return DesignResult{Structure: d.FallbackStructure(topic, level), Source: model.StructureSourceFallback}
	}

	structure, err := d.designWithAI(ctx, topic, description, level)
	if err != nil {
		// 网络错误、JSON 非法、字段缺失都走回退，不向上传播
		logger.Log.Warn("AI 结构设计失败，使用回退模板",
			zap.String("topic", topic), zap.Error(err))
		monitoring.PathsGenerated.WithLabelValues(model.StructureSourceFallback).Inc()
		return DesignResult{Structure: d.FallbackStructure(topic, level), Source: model.StructureSourceFallback}
	}

	monitoring.PathsGenerated.WithLabelValues(model.StructureSourceAI).Inc()
	return DesignResult{Structure: *structure, Source: model.StructureSourceAI}
}

func (d *PathDesigner) designWithAI(ctx context.Context, topic, description, level string) (*model.LearningPathStructure, error) {
	prompt := buildDesignPrompt(topic, description, level)

	content, err := d.ai.Chat(ctx, "design_structure", prompt)
	if err != nil {
		return nil, err
	}

	var structure model.LearningPathStructure
	if err := json.Unmarshal([]byte(ExtractJSON(content)), &structure); err != nil {
		return nil, fmt.Errorf("invalid structure JSON: %w", err)
	}

	if err := validateStructure(&structure); err != nil {
		return nil, err
	}

	return &structure, nil
}

func validateStructure(s *model.LearningPathStructure) error {
	if s.Topic == "" || len(s.Stages) == 0 {
		return fmt.Errorf("structure missing topic or stages")
	}
	for _, stage := range s.Stages {
		if stage.ID == 0 || stage.Title == "" {
			return fmt.Errorf("stage missing id or title")
		}
	}
	return nil
}

func buildDesignPrompt(topic, description, level string) string {
	return fmt.Sprintf(`You are a curriculum designer. Design a 4-stage learning path for the topic below.

Topic: %s
Description: %s
Learner level: %s

The four stages must be, in order: Fundamentals, Reinforcement, Practical Application, Advanced Mastery.

Respond with ONLY a JSON object in exactly this shape (no extra text):
{
  "topic": "string",
  "totalEstimatedHours": number,
  "difficulty": "beginner|intermediate|advanced",
  "prerequisites": ["string"],
  "stages": [
    {
      "id": 1,
      "title": "string",
      "description": "string",
      "estimatedHours": number,
      "learningObjectives": ["string"],
      "keyConcepts": [{"concept": "string", "importance": "high|medium|low", "prerequisites": ["string"]}],
      "assessmentCheckpoint": "string"
    }
  ],
  "learningOutcomes": ["string"],
  "careerApplications": ["string"],
  "nextSteps": ["string"]
}`, topic, description, level)
}

// fallbackTotalHours beginner 20 小时，intermediate 40，其余一律按 advanced 60
func fallbackTotalHours(level string) int {
	if level == model.LevelBeginner {
		return 20
	}
	if level == model.LevelIntermediate {
		return 40
	}
	return 60
}

// FallbackStructure 固定的四阶段模板，确定性生成，不依赖外部服务
func (d *PathDesigner) FallbackStructure(topic, level string) model.LearningPathStructure {
	totalHours := fallbackTotalHours(level)
	stageHours := totalHours / 4

	return model.LearningPathStructure{
		Topic:               topic,
		TotalEstimatedHours: totalHours,
		Difficulty:          level,
		Prerequisites:       []string{"Basic reading comprehension", "Willingness to practice consistently"},
		Stages: []model.Stage{
			{
				ID:             1,
				Title:          model.StageFundamentals,
				Description:    fmt.Sprintf("Build a solid foundation in %s: core terminology, basic principles, and mental models.", topic),
				EstimatedHours: stageHours,
				LearningObjectives: []string{
					fmt.Sprintf("Understand the core concepts of %s", topic),
					"Recognize common terminology and notation",
					"Explain the fundamentals in your own words",
				},
				KeyConcepts: []model.KeyConcept{
					{Concept: "Core terminology", Importance: "high"},
					{Concept: "Basic principles", Importance: "high"},
					{Concept: "Common use cases", Importance: "medium"},
				},
				AssessmentCheckpoint: "Explain the three most important concepts to someone unfamiliar with the topic",
			},
			{
				ID:             2,
				Title:          model.StageReinforcement,
				Description:    fmt.Sprintf("Reinforce the fundamentals of %s through guided exercises and varied examples.", topic),
				EstimatedHours: stageHours,
				LearningObjectives: []string{
					"Apply fundamental concepts to guided exercises",
					"Identify and correct common mistakes",
					"Connect related concepts into a coherent picture",
				},
				KeyConcepts: []model.KeyConcept{
					{Concept: "Worked examples", Importance: "high", Prerequisites: []string{"Core terminology"}},
					{Concept: "Common pitfalls", Importance: "medium"},
				},
				AssessmentCheckpoint: "Complete a set of practice exercises without reference material",
			},
			{
				ID:             3,
				Title:          model.StagePractical,
				Description:    fmt.Sprintf("Apply %s to realistic problems and build something end to end.", topic),
				EstimatedHours: stageHours,
				LearningObjectives: []string{
					"Apply the concepts to a realistic project",
					"Make and justify design decisions",
					"Troubleshoot problems independently",
				},
				KeyConcepts: []model.KeyConcept{
					{Concept: "Project planning", Importance: "medium"},
					{Concept: "Applied problem solving", Importance: "high", Prerequisites: []string{"Worked examples"}},
				},
				AssessmentCheckpoint: "Finish a small end-to-end project demonstrating the core skills",
			},
			{
				ID:             4,
				Title:          model.StageAdvancedMastery,
				Description:    fmt.Sprintf("Master advanced aspects of %s and connect them to professional practice.", topic),
				EstimatedHours: totalHours - 3*stageHours,
				LearningObjectives: []string{
					"Tackle advanced topics and edge cases",
					"Evaluate trade-offs between approaches",
					"Teach or mentor others on the topic",
				},
				KeyConcepts: []model.KeyConcept{
					{Concept: "Advanced techniques", Importance: "high", Prerequisites: []string{"Applied problem solving"}},
					{Concept: "Industry best practices", Importance: "medium"},
				},
				AssessmentCheckpoint: "Present an advanced project or write a deep-dive explainer",
			},
		},
		LearningOutcomes: []string{
			fmt.Sprintf("Working proficiency in %s", topic),
			"Ability to apply the skills to real problems",
			"A foundation for continued independent learning",
		},
		CareerApplications: []string{
			fmt.Sprintf("Roles that require %s skills", topic),
			"Freelance and project work",
		},
		NextSteps: []string{
			"Explore adjacent topics",
			"Join a community of practitioners",
			"Take on progressively harder projects",
		},
	}
}
