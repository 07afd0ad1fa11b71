// Package upgrade applies versioned data migrations on top of the schema
// auto-migration.
package upgrade

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"
)

// SchemaVersion 数据库版本记录表
type SchemaVersion struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Version     string    `gorm:"not null;uniqueIndex;type:varchar(64)" json:"version"`
	Description string    `gorm:"type:text" json:"description"`
	AppliedAt   time.Time `gorm:"not null" json:"applied_at"`
}

// TableName 指定表名
func (SchemaVersion) TableName() string {
	return "schema_version"
}

// Migration 定义升级接口
type Migration interface {
	Version() string
	Description() string
	Up(db *gorm.DB, ctx context.Context) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	db         *gorm.DB
	logger     *zap.Logger
	appVersion string
	migrations []Migration
}

// NewMigrationManager 创建升级管理器
func NewMigrationManager(db *gorm.DB, logger *zap.Logger, appVersion string) *MigrationManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MigrationManager{
		db:         db,
		logger:     logger,
		appVersion: appVersion,
		migrations: []Migration{
			// 在这里注册所有的升级脚本
			&CommentApproveMigrate{},
			&PublishedAtMigrate{},
		},
	}
}

// canonical adds the "v" prefix semver expects.
func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Run applies, in version order, every migration that is not recorded yet
// and is not newer than the running binary. Each runs in its own transaction
// together with its version record.
// Run 执行升级
func (m *MigrationManager) Run(ctx context.Context) (int, error) {
	running := canonical(m.appVersion)
	if !semver.IsValid(running) {
		return 0, fmt.Errorf("invalid application version %q", m.appVersion)
	}

	// 确保 schema_version 表存在
	if err := m.db.WithContext(ctx).AutoMigrate(&SchemaVersion{}); err != nil {
		return 0, fmt.Errorf("failed to create schema_version table: %w", err)
	}

	applied, err := m.getAppliedVersions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get applied versions: %w", err)
	}

	pending := make([]Migration, 0, len(m.migrations))
	for _, mg := range m.migrations {
		v := canonical(mg.Version())
		if !semver.IsValid(v) {
			return 0, fmt.Errorf("migration %q has an invalid version", mg.Version())
		}
		if applied[mg.Version()] {
			continue
		}
		if semver.Compare(v, running) > 0 {
			m.logger.Info("skip migration newer than running version",
				zap.String("scriptVersion", mg.Version()),
				zap.String("runningVersion", running))
			continue
		}
		pending = append(pending, mg)
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return semver.Compare(canonical(pending[i].Version()), canonical(pending[j].Version())) < 0
	})

	for _, mg := range pending {
		m.logger.Info("applying migration",
			zap.String("scriptVersion", mg.Version()),
			zap.String("desc", mg.Description()))

		if err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mg.Up(tx, ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			record := &SchemaVersion{
				Version:     mg.Version(),
				Description: mg.Description(),
				AppliedAt:   time.Now(),
			}
			if err := tx.Create(record).Error; err != nil {
				return fmt.Errorf("failed to record version: %w", err)
			}
			return nil
		}); err != nil {
			return 0, fmt.Errorf("failed to apply migration %s: %w", mg.Version(), err)
		}
		m.logger.Info("migration applied successfully", zap.String("scriptVersion", mg.Version()))
	}

	if len(pending) == 0 {
		m.logger.Info("database is already up to date")
	} else {
		m.logger.Info("upgrade completed", zap.Int("migrations_applied", len(pending)))
	}
	return len(pending), nil
}

// getAppliedVersions 获取已应用的数据库版本
func (m *MigrationManager) getAppliedVersions(ctx context.Context) (map[string]bool, error) {
	var versions []SchemaVersion
	if err := m.db.WithContext(ctx).Find(&versions).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v.Version] = true
	}
	return applied, nil
}

// Execute 执行升级(便捷方法)
func Execute(ctx context.Context, db *gorm.DB, logger *zap.Logger, appVersion string) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	_, err := NewMigrationManager(db, logger, appVersion).Run(ctx)
	return err
}
