package service

import (
	"time"

	"github.com/iWorld-y/report_studio/app/studio/internal/biz"
	"github.com/iWorld-y/report_studio/app/studio/pkg/catalog"
	"github.com/iWorld-y/report_studio/app/studio/pkg/chart"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

type ListCompaniesRequest struct{}

type ListCompaniesReply struct {
	Companies []catalog.Company `json:"companies"`
}

type ListKeywordsRequest struct{}

type ListKeywordsReply struct {
	Keywords []string `json:"keywords"`
}

type ListNewsRequest struct {
	Date     string   `json:"date"`
	Keywords []string `json:"keywords"`
}

type ListNewsReply struct {
	Items []catalog.NewsItem `json:"items"`
}

type SetNewsOrderRequest struct {
	Date string   `json:"date"`
	Ids  []string `json:"ids"`
}

type MoveNewsRequest struct {
	Date     string   `json:"date"`
	Keywords []string `json:"keywords"`
	Source   string   `json:"source"`
	Target   string   `json:"target"`
}

type NewsOrderReply struct {
	Ids []string `json:"ids"`
}

type CreateReportRequest struct {
	CompanyId  string   `json:"companyId"`
	Keywords   []string `json:"keywords"`
	Additional string   `json:"additional"`
	UserInput  string   `json:"userInput"`
}

type CreateReportReply struct {
	Report   *report.Report `json:"report"`
	Messages []*biz.Message `json:"messages"`
}

type ListReportsRequest struct {
	Page     int32 `json:"page"`
	PageSize int32 `json:"pageSize"`
}

// ReportSummary 报告列表项
type ReportSummary struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Keywords     []string  `json:"keywords"`
	SectionCount int32     `json:"sectionCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type ListReportsReply struct {
	Reports []*ReportSummary `json:"reports"`
	Total   int32            `json:"total"`
}

type GetReportRequest struct {
	Id string `json:"id"`
}

type ReportReply struct {
	Report *report.Report `json:"report"`
}

type EditReportRequest struct {
	Id   string `json:"id"`
	Text string `json:"text"`
}

type EditReportReply struct {
	Report *report.Report   `json:"report"`
	Action *update.Envelope `json:"action,omitempty"`
	Reply  *biz.Message     `json:"reply"`
}

type ApplyActionRequest struct {
	Id     string          `json:"id"`
	Action update.Envelope `json:"action"`
}

type ReplaceSectionsRequest struct {
	Id       string           `json:"id"`
	Sections []report.Section `json:"sections"`
}

type GetChartRequest struct {
	Id        string `json:"id"`
	SectionId string `json:"sectionId"`
}

type ChartReply struct {
	Chart chart.Descriptor `json:"chart"`
}

type ListMessagesRequest struct {
	Id string `json:"id"`
}

type ListMessagesReply struct {
	Messages []*biz.Message `json:"messages"`
}

type ImportURLRequest struct {
	Id  string `json:"id"`
	Url string `json:"url"`
}
