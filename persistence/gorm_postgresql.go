// persistence/gorm_postgresql.go
package persistence

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SecurityPuppy/plugdj-node/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := db.AutoMigrate(&models.GormPlayRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// SavePlayRecord 保存播放记录
func (p *GormPostgreSQL) SavePlayRecord(rec *models.PlayRecord) error {
	row := models.GormPlayRecord{
		RoomID:      rec.RoomID,
		HistoryID:   rec.HistoryID,
		DJID:        rec.DJID,
		DJName:      rec.DJName,
		MediaAuthor: rec.MediaAuthor,
		MediaTitle:  rec.MediaTitle,
		Positive:    rec.Positive,
		Negative:    rec.Negative,
		Curates:     rec.Curates,
		Score:       rec.Score,
	}
	row.CreatedAt = rec.PlayedAt
	return p.db.Create(&row).Error
}

// GetDJStats 获取DJ统计信息
func (p *GormPostgreSQL) GetDJStats(djID int64) (*models.DJStats, error) {
	var stats models.DJStats

	err := p.db.Raw(
		`
        SELECT
            COUNT(*) as total_plays,
            COALESCE(SUM(positive), 0) as total_woots,
            COALESCE(SUM(negative), 0) as total_mehs,
            COALESCE(SUM(curates), 0) as total_curates,
            COALESCE(AVG(score), 0.5) as average_score
        FROM gorm_play_records
        WHERE dj_id = ? AND deleted_at IS NULL`,
		djID,
	).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// Close 关闭数据库连接
func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction 事务支持
func (p *GormPostgreSQL) Transaction(fn func(tx *gorm.DB) error) error {
	return p.db.Transaction(fn)
}
