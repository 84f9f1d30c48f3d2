package repository

import (
	"consultacnpj/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultLookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *DefaultLookupRepository {
	return &DefaultLookupRepository{db: db}
}

func (r *DefaultLookupRepository) Save(record *entity.LookupRecord) error {
	return r.db.Create(record).Error
}

func (r *DefaultLookupRepository) FindRecent(limit int) ([]*entity.LookupRecord, error) {
	var records []*entity.LookupRecord
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *DefaultLookupRepository) DeleteOlderThan(before int64) error {
	return r.db.
		Where("created_at < ?", before).
		Delete(&entity.LookupRecord{}).Error
}
