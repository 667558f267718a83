// Package migration runs and tracks schema migrations.
//
// Each migration file registers itself in an init():
//
//	func init() {
//	    migration.Register("20260301000000_create_users_table", &createUsersTable{})
//	}
//
// Names carry a timestamp prefix so registration order never matters;
// execution order is always lexicographic. Run with `campusbites
// migrate`, undo the last batch with `campusbites migrate:rollback`.
package migration

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
)

// Migration is implemented by every schema migration.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

var registered = map[string]Migration{}

// Register adds a migration under its timestamp-prefixed name.
func Register(name string, m Migration) {
	registered[name] = m
}

// appliedMigration is one row of the tracking table.
type appliedMigration struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (appliedMigration) TableName() string { return "schema_migrations" }

// Runner executes registered migrations against one database.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) applied() (map[string]appliedMigration, error) {
	if err := r.db.AutoMigrate(&appliedMigration{}); err != nil {
		return nil, fmt.Errorf("migration: ensure tracking table: %w", err)
	}

	var rows []appliedMigration
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: read tracking table: %w", err)
	}

	byName := make(map[string]appliedMigration, len(rows))
	for _, row := range rows {
		byName[row.Name] = row
	}
	return byName, nil
}

func (r *Runner) lastBatch() int {
	var result struct{ Max int }
	r.db.Model(&appliedMigration{}).Select("MAX(batch) as max").Scan(&result)
	return result.Max
}

func sortedNames() []string {
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes every migration not yet applied, all in one batch.
func (r *Runner) Run() error {
	done, err := r.applied()
	if err != nil {
		return err
	}

	batch := r.lastBatch() + 1
	ran := 0

	for _, name := range sortedNames() {
		if _, ok := done[name]; ok {
			continue
		}

		logger.Info("migration: running", "name", name)
		if err := registered[name].Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", name, err)
		}
		if err := r.db.Create(&appliedMigration{Name: name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", name, err)
		}
		ran++
	}

	if ran == 0 {
		logger.Info("migration: nothing to migrate")
		return nil
	}
	logger.Info("migration: done", "ran", ran, "batch", batch)
	return nil
}

// Rollback reverses the most recent batch, newest migration first.
func (r *Runner) Rollback() error {
	if _, err := r.applied(); err != nil {
		return err
	}

	batch := r.lastBatch()
	if batch == 0 {
		logger.Info("migration: nothing to roll back")
		return nil
	}

	var rows []appliedMigration
	if err := r.db.Where("batch = ?", batch).Order("id desc").Find(&rows).Error; err != nil {
		return fmt.Errorf("migration: read batch %d: %w", batch, err)
	}

	for _, row := range rows {
		m, ok := registered[row.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", row.Name)
		}

		logger.Info("migration: rolling back", "name", row.Name)
		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", row.Name, err)
		}
		if err := r.db.Delete(&row).Error; err != nil {
			return fmt.Errorf("migration: forget %s: %w", row.Name, err)
		}
	}
	return nil
}

// Status prints every registered migration with its applied state.
func (r *Runner) Status() error {
	done, err := r.applied()
	if err != nil {
		return err
	}

	fmt.Printf("%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	for _, name := range sortedNames() {
		if row, ok := done[name]; ok {
			fmt.Printf("%-60s  %-8s  %d\n", name, "Ran", row.Batch)
		} else {
			fmt.Printf("%-60s  %-8s  -\n", name, "Pending")
		}
	}
	return nil
}
