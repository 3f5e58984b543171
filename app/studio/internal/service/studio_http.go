package service

import (
	"context"

	"github.com/go-kratos/kratos/v2/transport/http"
)

const (
	OperationStudioListCompanies   = "/studio.v1.Studio/ListCompanies"
	OperationStudioListKeywords    = "/studio.v1.Studio/ListKeywords"
	OperationStudioListNews        = "/studio.v1.Studio/ListNews"
	OperationStudioSetNewsOrder    = "/studio.v1.Studio/SetNewsOrder"
	OperationStudioMoveNews        = "/studio.v1.Studio/MoveNews"
	OperationStudioCreateReport    = "/studio.v1.Studio/CreateReport"
	OperationStudioListReports     = "/studio.v1.Studio/ListReports"
	OperationStudioGetReport       = "/studio.v1.Studio/GetReport"
	OperationStudioEditReport      = "/studio.v1.Studio/EditReport"
	OperationStudioApplyAction     = "/studio.v1.Studio/ApplyAction"
	OperationStudioReplaceSections = "/studio.v1.Studio/ReplaceSections"
	OperationStudioGetChart        = "/studio.v1.Studio/GetChart"
	OperationStudioListMessages    = "/studio.v1.Studio/ListMessages"
	OperationStudioImportURL       = "/studio.v1.Studio/ImportURL"
)

// StudioHTTPServer 报告工作台的 HTTP 接口
type StudioHTTPServer interface {
	ListCompanies(context.Context, *ListCompaniesRequest) (*ListCompaniesReply, error)
	ListKeywords(context.Context, *ListKeywordsRequest) (*ListKeywordsReply, error)
	ListNews(context.Context, *ListNewsRequest) (*ListNewsReply, error)
	SetNewsOrder(context.Context, *SetNewsOrderRequest) (*NewsOrderReply, error)
	MoveNews(context.Context, *MoveNewsRequest) (*NewsOrderReply, error)
	CreateReport(context.Context, *CreateReportRequest) (*CreateReportReply, error)
	ListReports(context.Context, *ListReportsRequest) (*ListReportsReply, error)
	GetReport(context.Context, *GetReportRequest) (*ReportReply, error)
	EditReport(context.Context, *EditReportRequest) (*EditReportReply, error)
	ApplyAction(context.Context, *ApplyActionRequest) (*ReportReply, error)
	ReplaceSections(context.Context, *ReplaceSectionsRequest) (*ReportReply, error)
	GetChart(context.Context, *GetChartRequest) (*ChartReply, error)
	ListMessages(context.Context, *ListMessagesRequest) (*ListMessagesReply, error)
	ImportURL(context.Context, *ImportURLRequest) (*ReportReply, error)
}

// RegisterStudioHTTPServer 注册路由
func RegisterStudioHTTPServer(s *http.Server, srv StudioHTTPServer) {
	r := s.Route("/")
	r.GET("/v1/companies", handler(OperationStudioListCompanies, srv.ListCompanies))
	r.GET("/v1/keywords", handler(OperationStudioListKeywords, srv.ListKeywords))
	r.GET("/v1/news", handler(OperationStudioListNews, srv.ListNews, bindQuery))
	r.PUT("/v1/news/order", handler(OperationStudioSetNewsOrder, srv.SetNewsOrder, bindBody))
	r.POST("/v1/news/move", handler(OperationStudioMoveNews, srv.MoveNews, bindBody))
	r.POST("/v1/reports", handler(OperationStudioCreateReport, srv.CreateReport, bindBody))
	r.GET("/v1/reports", handler(OperationStudioListReports, srv.ListReports, bindQuery))
	r.GET("/v1/reports/{id}", handler(OperationStudioGetReport, srv.GetReport, bindVars))
	r.POST("/v1/reports/{id}/edit", handler(OperationStudioEditReport, srv.EditReport, bindBody, bindVars))
	r.POST("/v1/reports/{id}/actions", handler(OperationStudioApplyAction, srv.ApplyAction, bindBody, bindVars))
	r.PUT("/v1/reports/{id}/sections", handler(OperationStudioReplaceSections, srv.ReplaceSections, bindBody, bindVars))
	r.GET("/v1/reports/{id}/messages", handler(OperationStudioListMessages, srv.ListMessages, bindVars))
	r.GET("/v1/reports/{id}/sections/{sectionId}/chart", handler(OperationStudioGetChart, srv.GetChart, bindVars))
	r.POST("/v1/reports/{id}/import", handler(OperationStudioImportURL, srv.ImportURL, bindBody, bindVars))
}

type binder func(http.Context, any) error

func bindBody(ctx http.Context, v any) error  { return ctx.Bind(v) }
func bindQuery(ctx http.Context, v any) error { return ctx.BindQuery(v) }
func bindVars(ctx http.Context, v any) error  { return ctx.BindVars(v) }

// handler 按生成代码的流程处理请求：绑定参数，经过中间件，写回结果
func handler[Req, Reply any](operation string, call func(context.Context, *Req) (*Reply, error), binders ...binder) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in Req
		for _, bind := range binders {
			if err := bind(ctx, &in); err != nil {
				return err
			}
		}
		http.SetOperation(ctx, operation)
		h := ctx.Middleware(func(ctx context.Context, req any) (any, error) {
			return call(ctx, req.(*Req))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.Result(200, out.(*Reply))
	}
}
