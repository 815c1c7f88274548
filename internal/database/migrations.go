package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// compositeIndexes are the filters the listing and reporting queries rely on.
var compositeIndexes = []index{
	{"tasks", "idx_tasks_posted_by_status", "posted_by, status"},
	{"applications", "idx_applications_task_status", "task_id, status"},
	{"sub_tasks", "idx_sub_tasks_parent_status", "parent_task_id, status"},
	{"activities", "idx_activities_created_at", "created_at"},
}

// AddIndexes creates the composite indexes that are not declared on the models.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()
	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
