package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/lib/pq"

	"github.com/iWorld-y/report_studio/app/studio/internal/biz"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
)

// NewReportRepo 根据数据源选择 postgres 或内存实现
func NewReportRepo(data *Data, logger log.Logger) biz.ReportRepo {
	if data.db == nil {
		return &memoryReportRepo{reports: map[string]*report.Report{}}
	}
	return &reportRepo{data: data, log: log.NewHelper(logger)}
}

type reportRepo struct {
	data *Data
	log  *log.Helper
}

const reportColumns = `id, title, sections, keywords, user_input, created_at, updated_at`

func (r *reportRepo) SaveReport(ctx context.Context, rp *report.Report) error {
	sections, err := json.Marshal(rp.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	keywords := rp.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	_, err = r.data.db.ExecContext(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			sections = EXCLUDED.sections,
			keywords = EXCLUDED.keywords,
			user_input = EXCLUDED.user_input,
			updated_at = EXCLUDED.updated_at`,
		rp.ID, rp.Title, sections, pq.Array(keywords), rp.UserInput, rp.CreatedAt, rp.UpdatedAt,
	)
	return err
}

func (r *reportRepo) GetReport(ctx context.Context, id string) (*report.Report, error) {
	row := r.data.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)
	rp, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, biz.ErrReportNotFound
		}
		return nil, err
	}
	return rp, nil
}

func (r *reportRepo) ListReports(ctx context.Context, page, pageSize int) ([]*report.Report, int, error) {
	offset := (page - 1) * pageSize
	rows, err := r.data.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM reports ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*report.Report
	for rows.Next() {
		rp, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.data.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (*report.Report, error) {
	var (
		rp       report.Report
		sections []byte
		keywords []string
	)
	if err := s.Scan(&rp.ID, &rp.Title, &sections, pq.Array(&keywords), &rp.UserInput, &rp.CreatedAt, &rp.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sections, &rp.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections of %s: %w", rp.ID, err)
	}
	rp.Keywords = keywords
	return &rp, nil
}

// memoryReportRepo 内存实现，存取时复制以免调用方修改已保存的数据
type memoryReportRepo struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
}

func (m *memoryReportRepo) SaveReport(_ context.Context, rp *report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[rp.ID] = rp.Clone()
	return nil
}

func (m *memoryReportRepo) GetReport(_ context.Context, id string) (*report.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rp, ok := m.reports[id]
	if !ok {
		return nil, biz.ErrReportNotFound
	}
	return rp.Clone(), nil
}

func (m *memoryReportRepo) ListReports(_ context.Context, page, pageSize int) ([]*report.Report, int, error) {
	m.mu.RLock()
	all := make([]*report.Report, 0, len(m.reports))
	for _, rp := range m.reports {
		all = append(all, rp.Clone())
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	start := (page - 1) * pageSize
	if start >= len(all) {
		return []*report.Report{}, len(all), nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], len(all), nil
}
