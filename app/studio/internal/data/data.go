package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	_ "github.com/lib/pq"

	"github.com/iWorld-y/report_studio/app/studio/internal/conf"
)

// ProviderSet 数据层 Provider 集合
var ProviderSet = wire.NewSet(
	NewData,
	NewReportRepo,
	NewMessageRepo,
	NewNewsRepo,
	NewSearcher,
	NewFetcher,
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	sections JSONB NOT NULL DEFAULT '[]',
	keywords TEXT[] NOT NULL DEFAULT '{}',
	user_input TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS report_messages (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	report_id TEXT NOT NULL REFERENCES reports(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_report_messages_report_id ON report_messages(report_id);
CREATE TABLE IF NOT EXISTS news_orders (
	day TEXT PRIMARY KEY,
	ids TEXT[] NOT NULL DEFAULT '{}'
);
`

// Data 数据源，db 为空时各仓库使用内存实现
type Data struct {
	db *sql.DB
}

// NewData 打开数据库并初始化表结构，未配置数据库时返回内存模式
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c == nil || c.Database == nil || c.Database.Source == "" {
		helper.Warn("database not configured, using in-memory storage")
		return &Data{}, func() {}, nil
	}

	driver := c.Database.Driver
	if driver == "" {
		driver = "postgres"
	}
	db, err := sql.Open(driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}

func initSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
