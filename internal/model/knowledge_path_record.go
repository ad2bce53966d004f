package model

// KnowledgePathRecord 持久化的知识路径快照
// 路径本体与摘要以 JSON 列存储，列表页只读顶层元信息字段
type KnowledgePathRecord struct {
	UUIDBase
	Topic           string  `gorm:"size:255;not null;index" json:"topic"`
	Difficulty      string  `gorm:"size:20;not null" json:"difficulty"`
	StructureSource string  `gorm:"size:20;not null" json:"structureSource"`
	Rating          string  `gorm:"size:32" json:"rating"`
	TotalResources  int     `gorm:"default:0" json:"totalResources"`
	CompletenessVal float64 `gorm:"column:completeness;default:0" json:"completeness"`
	PathJSON        string  `gorm:"type:json" json:"-"`
	SummaryJSON     string  `gorm:"type:json" json:"-"`
}

func (KnowledgePathRecord) TableName() string {
	return "knowledge_paths"
}
