// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/SecurityPuppy/plugdj-node/models"
)

// PostgreSQL 数据库实现（原生SQL）
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	// 设置连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 初始化表结构
	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS play_records (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(255) NOT NULL,
            history_id VARCHAR(255) NOT NULL,
            dj_id BIGINT NOT NULL,
            dj_name VARCHAR(255) NOT NULL,
            media_author VARCHAR(255),
            media_title VARCHAR(255),
            positive INT NOT NULL DEFAULT 0,
            negative INT NOT NULL DEFAULT 0,
            curates INT NOT NULL DEFAULT 0,
            score DOUBLE PRECISION NOT NULL DEFAULT 0.5,
            played_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	// 创建索引以提高查询性能
	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_play_records_room_id ON play_records(room_id);
        CREATE INDEX IF NOT EXISTS idx_play_records_dj_id ON play_records(dj_id);
        CREATE INDEX IF NOT EXISTS idx_play_records_played_at ON play_records(played_at);
    `)

	return err
}

// SavePlayRecord 保存播放记录
func (p *PostgreSQL) SavePlayRecord(rec *models.PlayRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `
        INSERT INTO play_records
            (room_id, history_id, dj_id, dj_name, media_author, media_title,
             positive, negative, curates, score, played_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `

	_, err := p.db.ExecContext(ctx, query,
		rec.RoomID, rec.HistoryID, rec.DJID, rec.DJName,
		rec.MediaAuthor, rec.MediaTitle,
		rec.Positive, rec.Negative, rec.Curates, rec.Score, rec.PlayedAt)
	return err
}

// GetDJStats 获取DJ统计信息
func (p *PostgreSQL) GetDJStats(djID int64) (*models.DJStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stats models.DJStats
	query := `
        SELECT
            COUNT(*),
            COALESCE(SUM(positive), 0),
            COALESCE(SUM(negative), 0),
            COALESCE(SUM(curates), 0),
            COALESCE(AVG(score), 0.5)
        FROM play_records
        WHERE dj_id = $1
    `
	err := p.db.QueryRowContext(ctx, query, djID).Scan(
		&stats.TotalPlays, &stats.TotalWoots, &stats.TotalMehs,
		&stats.TotalCurates, &stats.AverageScore)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &stats, nil
}

// Close 关闭数据库连接
func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
