package database

import (
	"fmt"

	"gorm.io/gorm"
)

type tableIndex struct {
	table   string
	name    string
	columns string
}

// Task list filters and the overdue derivation read these columns.
var taskIndexes = []tableIndex{
	{"tasks", "idx_tasks_assigned_to", "assigned_to"},
	{"tasks", "idx_tasks_status", "status"},
	{"tasks", "idx_tasks_deadline", "deadline"},
}

// AddIndexes creates any missing task indexes.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, idx := range taskIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
