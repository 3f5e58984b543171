package factory

import (
	"errors"
	"fmt"

	"github.com/iWorld-y/report_studio/app/studio/pkg/config"
	"github.com/iWorld-y/report_studio/app/studio/pkg/search"
	"github.com/iWorld-y/report_studio/app/studio/pkg/searxng"
	"github.com/iWorld-y/report_studio/app/studio/pkg/tavily"
)

// ErrNotConfigured 没有配置任何搜索服务
var ErrNotConfigured = errors.New("search provider not configured")

// NewSearcher 根据配置创建搜索实例
func NewSearcher(cfg config.SearchConfig) (search.Searcher, error) {
	provider := cfg.Provider
	if provider == "" {
		// 有 tavily key 时默认使用 tavily
		if cfg.Tavily.APIKey == "" {
			return nil, ErrNotConfigured
		}
		provider = "tavily"
	}

	switch provider {
	case "tavily":
		if cfg.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Tavily.APIKey), nil

	case "searxng":
		if cfg.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.SearXNG.BaseURL, cfg.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
