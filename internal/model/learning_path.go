package model

import "time"

// 难度等级
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// 四个固定阶段的标题
const (
	StageFundamentals    = "Fundamentals"
	StageReinforcement   = "Reinforcement"
	StagePractical       = "Practical Application"
	StageAdvancedMastery = "Advanced Mastery"
)

// 路径结构来源：AI 生成或静态回退模板
const (
	StructureSourceAI       = "ai"
	StructureSourceFallback = "fallback"
)

type KeyConcept struct {
	Concept       string   `json:"concept"`
	Importance    string   `json:"importance"`
	Prerequisites []string `json:"prerequisites,omitempty"`
}

// Stage 课程的一个阶段，由 Designer 创建后只读
type Stage struct {
	ID                   int          `json:"id"`
	Title                string       `json:"title"`
	Description          string       `json:"description"`
	EstimatedHours       int          `json:"estimatedHours"`
	LearningObjectives   []string     `json:"learningObjectives"`
	KeyConcepts          []KeyConcept `json:"keyConcepts"`
	AssessmentCheckpoint string       `json:"assessmentCheckpoint"`
}

// LearningPathStructure 四阶段课程骨架
type LearningPathStructure struct {
	Topic               string   `json:"topic"`
	TotalEstimatedHours int      `json:"totalEstimatedHours"`
	Difficulty          string   `json:"difficulty"`
	Prerequisites       []string `json:"prerequisites"`
	Stages              []Stage  `json:"stages"`
	LearningOutcomes    []string `json:"learningOutcomes"`
	CareerApplications  []string `json:"careerApplications"`
	NextSteps           []string `json:"nextSteps"`
}

// StageContent 某一阶段搜索到的内容，按 stageId 对齐（非下标对齐）
type StageContent struct {
	StageID int        `json:"stageId"`
	Content []Resource `json:"content"`
}

// 阶段完成状态
const (
	StageStatusComplete   = "complete"
	StageStatusIncomplete = "incomplete"
)

// PathStage 结构阶段 + 挂载的资源
type PathStage struct {
	Stage
	Resources     []Resource `json:"resources"`
	ResourceCount int        `json:"resourceCount"`
	Status        string     `json:"status"`
}

// Completeness 完整度：资源数 >=3 的阶段计为"已完成"
type Completeness struct {
	Score           float64  `json:"score"`
	CompletedStages int      `json:"completedStages"`
	TotalStages     int      `json:"totalStages"`
	Rating          string   `json:"rating"`
	MissingStages   []string `json:"missingStages,omitempty"`
}

type PathMetadata struct {
	CreatedAt      time.Time    `json:"createdAt"`
	TotalResources int          `json:"totalResources"`
	Completeness   Completeness `json:"completeness"`
}

// KnowledgePath 组装完成的知识路径
type KnowledgePath struct {
	Topic               string       `json:"topic"`
	TotalEstimatedHours int          `json:"totalEstimatedHours"`
	Difficulty          string       `json:"difficulty"`
	Prerequisites       []string     `json:"prerequisites"`
	Stages              []PathStage  `json:"stages"`
	LearningOutcomes    []string     `json:"learningOutcomes"`
	CareerApplications  []string     `json:"careerApplications"`
	NextSteps           []string     `json:"nextSteps"`
	Metadata            PathMetadata `json:"metadata"`
}

type StageSummary struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	EstimatedHours int    `json:"estimatedHours"`
	ResourceCount  int    `json:"resourceCount"`
	Status         string `json:"status"`
}

// PathSummary 知识路径的紧凑摘要（纯投影，不做新计算）
type PathSummary struct {
	Title            string         `json:"title"`
	Overview         string         `json:"overview"`
	Difficulty       string         `json:"difficulty"`
	TotalHours       int            `json:"totalHours"`
	TotalResources   int            `json:"totalResources"`
	Completeness     string         `json:"completeness"`
	Stages           []StageSummary `json:"stages"`
	LearningOutcomes []string       `json:"learningOutcomes"`
	NextSteps        []string       `json:"nextSteps"`
}
