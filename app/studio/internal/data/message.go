package data

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_studio/app/studio/internal/biz"
)

// NewMessageRepo 根据数据源选择 postgres 或内存实现
func NewMessageRepo(data *Data, logger log.Logger) biz.MessageRepo {
	if data.db == nil {
		return &memoryMessageRepo{}
	}
	return &messageRepo{data: data, log: log.NewHelper(logger)}
}

type messageRepo struct {
	data *Data
	log  *log.Helper
}

func (r *messageRepo) AppendMessages(ctx context.Context, msgs ...*biz.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	tx, err := r.data.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO report_messages (id, report_id, type, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
			m.ID, m.ReportID, string(m.Type), m.Content, m.Timestamp,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert message %s: %w", m.ID, err)
		}
	}
	return tx.Commit()
}

func (r *messageRepo) ListMessages(ctx context.Context, reportID string) ([]*biz.Message, error) {
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT id, type, content, report_id, created_at FROM report_messages WHERE report_id = $1 ORDER BY seq`,
		reportID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []*biz.Message{}
	for rows.Next() {
		var (
			m   biz.Message
			typ string
		)
		if err := rows.Scan(&m.ID, &typ, &m.Content, &m.ReportID, &m.Timestamp); err != nil {
			return nil, err
		}
		m.Type = biz.MessageType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

type memoryMessageRepo struct {
	mu   sync.RWMutex
	msgs []biz.Message
}

func (m *memoryMessageRepo) AppendMessages(_ context.Context, msgs ...*biz.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range msgs {
		m.msgs = append(m.msgs, *msg)
	}
	return nil
}

func (m *memoryMessageRepo) ListMessages(_ context.Context, reportID string) ([]*biz.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := []*biz.Message{}
	for _, msg := range m.msgs {
		if msg.ReportID == reportID {
			msg := msg
			list = append(list, &msg)
		}
	}
	return list, nil
}
