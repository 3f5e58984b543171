package data

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/report_studio/app/studio/internal/biz"
)

const fetchTimeout = 30 * time.Second

type articleFetcher struct {
	client *http.Client
}

// NewFetcher 创建基于 readability 的正文抓取器
func NewFetcher() biz.Fetcher {
	return &articleFetcher{client: &http.Client{Timeout: fetchTimeout}}
}

func (f *articleFetcher) Fetch(ctx context.Context, rawURL string) (*biz.Article, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, biz.ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	res, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, res.StatusCode)
	}

	article, err := readability.FromReader(res.Body, u)
	if err != nil {
		return nil, fmt.Errorf("parse article: %w", err)
	}
	return &biz.Article{URL: rawURL, Title: article.Title, Text: article.TextContent}, nil
}
