package gorm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskmanager/db/schema/stateschema"
	"taskmanager/domain/task"
)

type StateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) task.Repository {
	return &StateRepository{db: db}
}

func (r *StateRepository) Load(ctx context.Context, key string) (string, bool, error) {
	var e stateschema.Entry
	// missing keys are normal on first run
	res := r.db.WithContext(ctx).Where(&stateschema.Entry{Key: key}).Limit(1).Find(&e)
	if res.Error != nil {
		return "", false, res.Error
	}
	if res.RowsAffected == 0 {
		return "", false, nil
	}
	return e.Value, true, nil
}

func (r *StateRepository) Save(ctx context.Context, key, value string) error {
	e := stateschema.Entry{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}
