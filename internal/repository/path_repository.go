package repository

import (
	"learnpath_backend/internal/model"

	"gorm.io/gorm"
)

type PathRepository struct {
	db *gorm.DB
}

func NewPathRepository(db *gorm.DB) *PathRepository {
	return &PathRepository{db: db}
}

func (r *PathRepository) Create(record *model.KnowledgePathRecord) error {
	return r.db.Create(record).Error
}

func (r *PathRepository) FindByID(id string) (*model.KnowledgePathRecord, error) {
	var record model.KnowledgePathRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *PathRepository) List(topic string, page, limit int) ([]model.KnowledgePathRecord, int64, error) {
	var records []model.KnowledgePathRecord
	var total int64

	query := r.db.Model(&model.KnowledgePathRecord{})
	if topic != "" {
		query = query.Where("topic LIKE ?", "%"+topic+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *PathRepository) DeleteByID(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.KnowledgePathRecord{}).Error
}
