package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/iWorld-y/report_studio/app/studio/internal/biz"
	"github.com/iWorld-y/report_studio/app/studio/internal/conf"
	"github.com/iWorld-y/report_studio/app/studio/pkg/catalog"
	"github.com/iWorld-y/report_studio/app/studio/pkg/config"
	"github.com/iWorld-y/report_studio/app/studio/pkg/search"
	"github.com/iWorld-y/report_studio/app/studio/pkg/search/factory"
)

const (
	defaultNewsResults = 10
	maxBullets         = 3
)

// NewSearcher 按配置创建新闻搜索客户端，未配置时返回 nil
func NewSearcher(c *conf.News, logger log.Logger) search.Searcher {
	if c == nil || c.Search == nil {
		return nil
	}
	cfg := config.SearchConfig{Provider: c.Search.Provider}
	if c.Search.Tavily != nil {
		cfg.Tavily.APIKey = c.Search.Tavily.ApiKey
	}
	if c.Search.Searxng != nil {
		cfg.SearXNG = config.SearXNGConfig{BaseURL: c.Search.Searxng.BaseUrl, Timeout: int(c.Search.Searxng.Timeout)}
	}

	s, err := factory.NewSearcher(cfg)
	if err != nil {
		log.NewHelper(logger).Warnf("news search disabled: %v", err)
		return nil
	}
	return s
}

type newsRepo struct {
	data       *Data
	searcher   search.Searcher
	maxResults int
	log        *log.Helper

	mu     sync.RWMutex
	orders map[string][]string // db 为空时使用
}

// NewNewsRepo 创建新闻仓库，searcher 为空时返回内置样例
func NewNewsRepo(data *Data, searcher search.Searcher, c *conf.News, logger log.Logger) biz.NewsRepo {
	limit := defaultNewsResults
	if c != nil && c.MaxResults > 0 {
		limit = int(c.MaxResults)
	}
	return &newsRepo{
		data:       data,
		searcher:   searcher,
		maxResults: limit,
		log:        log.NewHelper(logger),
		orders:     map[string][]string{},
	}
}

func (r *newsRepo) DailyNews(ctx context.Context, date string, keywords []string) ([]catalog.NewsItem, error) {
	if r.searcher == nil {
		return catalog.DailyNews(), nil
	}

	terms := keywords
	if len(terms) == 0 {
		terms = catalog.Keywords()
	}
	resp, err := r.searcher.Search(ctx, &search.Request{
		Query:      strings.Join(terms, " OR "),
		Topic:      search.TopicNews,
		MaxResults: r.maxResults,
		StartDate:  date,
		EndDate:    date,
	})
	if err != nil {
		r.log.WithContext(ctx).Errorf("search news for %s failed: %v", date, err)
		return nil, err
	}

	items := make([]catalog.NewsItem, 0, len(resp.Results))
	for _, res := range resp.Results {
		items = append(items, toNewsItem(res, terms))
	}
	return items, nil
}

// toNewsItem 用 URL 生成稳定的 ID，标签取标题或正文中出现的关键词
func toNewsItem(res search.Result, terms []string) catalog.NewsItem {
	text := strings.ToLower(res.Title + " " + res.Content)
	tags := []string{}
	for _, t := range terms {
		if strings.Contains(text, strings.ToLower(t)) {
			tags = append(tags, t)
		}
	}
	return catalog.NewsItem{
		ID:      uuid.NewSHA1(uuid.NameSpaceURL, []byte(res.URL)).String(),
		Title:   res.Title,
		Bullets: bullets(res.Content),
		URL:     res.URL,
		Source:  res.Site(),
		Tags:    tags,
	}
}

func bullets(content string) []string {
	out := []string{}
	for _, line := range strings.FieldsFunc(content, func(r rune) bool { return r == '\n' || r == '.' || r == '。' }) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == maxBullets {
			break
		}
	}
	return out
}

func (r *newsRepo) NewsOrder(ctx context.Context, date string) ([]string, error) {
	if r.data.db == nil {
		r.mu.RLock()
		defer r.mu.RUnlock()
		return append([]string(nil), r.orders[date]...), nil
	}

	var ids []string
	err := r.data.db.QueryRowContext(ctx, `SELECT ids FROM news_orders WHERE day = $1`, date).Scan(pq.Array(&ids))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ids, err
}

func (r *newsRepo) SetNewsOrder(ctx context.Context, date string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	if r.data.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.orders[date] = append([]string{}, ids...)
		return nil
	}

	_, err := r.data.db.ExecContext(ctx,
		`INSERT INTO news_orders (day, ids) VALUES ($1, $2) ON CONFLICT (day) DO UPDATE SET ids = EXCLUDED.ids`,
		date, pq.Array(ids),
	)
	return err
}
