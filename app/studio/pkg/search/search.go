// Package search 定义新闻检索的通用接口，具体实现见 tavily 与 searxng。
package search

import (
	"context"
	"net/url"
	"strings"
)

// Topic 检索类别
const (
	TopicNews    = "news"
	TopicGeneral = "general"
)

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string
	MaxResults int
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}

// Site 返回结果来源站点，去掉 www. 前缀
func (r Result) Site() string {
	u, err := url.Parse(r.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
