package biz

import (
	"context"
	"sort"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_studio/app/studio/pkg/catalog"
)

// NewsRepo 每日新闻仓库接口
type NewsRepo interface {
	// DailyNews 返回某天与关键词相关的新闻，keywords 为空时返回全部
	DailyNews(ctx context.Context, date string, keywords []string) ([]catalog.NewsItem, error)
	NewsOrder(ctx context.Context, date string) ([]string, error)
	SetNewsOrder(ctx context.Context, date string, ids []string) error
}

// WorkspaceUseCase 工作台业务逻辑：公司、关键词与每日新闻
type WorkspaceUseCase struct {
	news NewsRepo
	now  func() time.Time
	log  *log.Helper
}

// NewWorkspaceUseCase 创建工作台业务逻辑实例
func NewWorkspaceUseCase(news NewsRepo, logger log.Logger) *WorkspaceUseCase {
	return &WorkspaceUseCase{news: news, now: time.Now, log: log.NewHelper(logger)}
}

// Companies 可选公司列表
func (uc *WorkspaceUseCase) Companies() []catalog.Company {
	return catalog.Companies()
}

// Company 按 ID 获取公司
func (uc *WorkspaceUseCase) Company(id string) (catalog.Company, error) {
	c, ok := catalog.CompanyByID(id)
	if !ok {
		return catalog.Company{}, ErrCompanyNotFound
	}
	return c, nil
}

// Keywords 可选关键词
func (uc *WorkspaceUseCase) Keywords() []string {
	return catalog.Keywords()
}

// News 返回某天的新闻，按标签过滤并按保存的顺序排列
func (uc *WorkspaceUseCase) News(ctx context.Context, date string, keywords []string) ([]catalog.NewsItem, error) {
	date, err := uc.day(date)
	if err != nil {
		return nil, err
	}
	items, err := uc.news.DailyNews(ctx, date, keywords)
	if err != nil {
		return nil, err
	}
	items = FilterNews(items, keywords)

	order, err := uc.news.NewsOrder(ctx, date)
	if err != nil {
		return nil, err
	}
	return OrderNews(items, order), nil
}

// SetNewsOrder 保存某天新闻的展示顺序
func (uc *WorkspaceUseCase) SetNewsOrder(ctx context.Context, date string, ids []string) error {
	date, err := uc.day(date)
	if err != nil {
		return err
	}
	return uc.news.SetNewsOrder(ctx, date, ids)
}

// MoveNews 把 source 移动到 target 所在位置，返回新的顺序。
// 尚未保存顺序时以当前展示顺序为准，任一 ID 不存在时顺序不变。
func (uc *WorkspaceUseCase) MoveNews(ctx context.Context, date string, keywords []string, source, target string) ([]string, error) {
	items, err := uc.News(ctx, date, keywords)
	if err != nil {
		return nil, err
	}
	date, _ = uc.day(date)
	order, err := uc.news.NewsOrder(ctx, date)
	if err != nil {
		return nil, err
	}

	// 补齐未出现在顺序中的新闻
	seen := make(map[string]struct{}, len(order))
	next := append([]string{}, order...)
	for _, id := range next {
		seen[id] = struct{}{}
	}
	for _, it := range items {
		if _, ok := seen[it.ID]; !ok {
			next = append(next, it.ID)
		}
	}

	if source == target {
		return next, nil
	}
	from, to := indexOf(next, source), indexOf(next, target)
	if from < 0 || to < 0 {
		return next, nil
	}
	next = append(next[:from], next[from+1:]...)
	next = append(next[:to], append([]string{source}, next[to:]...)...)

	if err := uc.news.SetNewsOrder(ctx, date, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (uc *WorkspaceUseCase) day(date string) (string, error) {
	if date == "" {
		return uc.now().Format(time.DateOnly), nil
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return "", ErrInvalidDate
	}
	return date, nil
}

// FilterNews 保留任一标签命中关键词的新闻，关键词为空时全部保留
func FilterNews(items []catalog.NewsItem, keywords []string) []catalog.NewsItem {
	if len(keywords) == 0 {
		return items
	}
	want := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		want[k] = struct{}{}
	}
	out := make([]catalog.NewsItem, 0, len(items))
	for _, it := range items {
		for _, t := range it.Tags {
			if _, ok := want[t]; ok {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// OrderNews 按保存的顺序排列，不在顺序中的新闻保持原有相对顺序排在最后
func OrderNews(items []catalog.NewsItem, order []string) []catalog.NewsItem {
	if len(order) == 0 {
		return items
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		if _, ok := pos[id]; !ok {
			pos[id] = i
		}
	}
	out := append([]catalog.NewsItem{}, items...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, iok := pos[out[i].ID]
		pj, jok := pos[out[j].ID]
		switch {
		case iok && jok:
			return pi < pj
		case iok:
			return true
		default:
			return false
		}
	})
	return out
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
