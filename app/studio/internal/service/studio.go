package service

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"

	"github.com/iWorld-y/report_studio/app/studio/internal/biz"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

// ProviderSet 服务层 Provider 集合
var ProviderSet = wire.NewSet(NewStudioService)

// StudioService 报告工作台服务
type StudioService struct {
	reports   *biz.ReportUseCase
	workspace *biz.WorkspaceUseCase
	log       *log.Helper
}

func NewStudioService(reports *biz.ReportUseCase, workspace *biz.WorkspaceUseCase, logger log.Logger) *StudioService {
	return &StudioService{
		reports:   reports,
		workspace: workspace,
		log:       log.NewHelper(logger),
	}
}

var _ StudioHTTPServer = (*StudioService)(nil)

func (s *StudioService) ListCompanies(ctx context.Context, req *ListCompaniesRequest) (*ListCompaniesReply, error) {
	return &ListCompaniesReply{Companies: s.workspace.Companies()}, nil
}

func (s *StudioService) ListKeywords(ctx context.Context, req *ListKeywordsRequest) (*ListKeywordsReply, error) {
	return &ListKeywordsReply{Keywords: s.workspace.Keywords()}, nil
}

func (s *StudioService) ListNews(ctx context.Context, req *ListNewsRequest) (*ListNewsReply, error) {
	items, err := s.workspace.News(ctx, req.Date, splitKeywords(req.Keywords))
	if err != nil {
		return nil, err
	}
	return &ListNewsReply{Items: items}, nil
}

func (s *StudioService) SetNewsOrder(ctx context.Context, req *SetNewsOrderRequest) (*NewsOrderReply, error) {
	if err := s.workspace.SetNewsOrder(ctx, req.Date, req.Ids); err != nil {
		return nil, err
	}
	return &NewsOrderReply{Ids: req.Ids}, nil
}

func (s *StudioService) MoveNews(ctx context.Context, req *MoveNewsRequest) (*NewsOrderReply, error) {
	ids, err := s.workspace.MoveNews(ctx, req.Date, splitKeywords(req.Keywords), req.Source, req.Target)
	if err != nil {
		return nil, err
	}
	return &NewsOrderReply{Ids: ids}, nil
}

func (s *StudioService) CreateReport(ctx context.Context, req *CreateReportRequest) (*CreateReportReply, error) {
	r, msgs, err := s.reports.Create(ctx, biz.Brief{
		CompanyID:  req.CompanyId,
		Keywords:   req.Keywords,
		Additional: req.Additional,
		UserInput:  req.UserInput,
	})
	if err != nil {
		return nil, err
	}
	return &CreateReportReply{Report: r, Messages: msgs}, nil
}

func (s *StudioService) ListReports(ctx context.Context, req *ListReportsRequest) (*ListReportsReply, error) {
	reports, total, err := s.reports.List(ctx, int(req.Page), int(req.PageSize))
	if err != nil {
		return nil, err
	}

	list := make([]*ReportSummary, 0, len(reports))
	for _, r := range reports {
		list = append(list, &ReportSummary{
			Id:           r.ID,
			Title:        r.Title,
			Keywords:     r.Keywords,
			SectionCount: int32(len(r.Sections)),
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return &ListReportsReply{Reports: list, Total: int32(total)}, nil
}

func (s *StudioService) GetReport(ctx context.Context, req *GetReportRequest) (*ReportReply, error) {
	r, err := s.reports.Get(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &ReportReply{Report: r}, nil
}

func (s *StudioService) EditReport(ctx context.Context, req *EditReportRequest) (*EditReportReply, error) {
	res, err := s.reports.Edit(ctx, req.Id, req.Text)
	if err != nil {
		return nil, err
	}
	reply := &EditReportReply{Report: res.Report, Reply: res.Reply}
	if res.Action != nil {
		env := update.Encode(res.Action)
		reply.Action = &env
	}
	return reply, nil
}

func (s *StudioService) ApplyAction(ctx context.Context, req *ApplyActionRequest) (*ReportReply, error) {
	a, err := req.Action.Action()
	if err != nil {
		return nil, biz.ErrInvalidAction(err)
	}
	r, err := s.reports.ApplyAction(ctx, req.Id, a)
	if err != nil {
		return nil, err
	}
	return &ReportReply{Report: r}, nil
}

func (s *StudioService) ReplaceSections(ctx context.Context, req *ReplaceSectionsRequest) (*ReportReply, error) {
	r, err := s.reports.ReplaceSections(ctx, req.Id, req.Sections)
	if err != nil {
		return nil, err
	}
	return &ReportReply{Report: r}, nil
}

func (s *StudioService) GetChart(ctx context.Context, req *GetChartRequest) (*ChartReply, error) {
	d, err := s.reports.Chart(ctx, req.Id, req.SectionId)
	if err != nil {
		return nil, err
	}
	return &ChartReply{Chart: d}, nil
}

func (s *StudioService) ListMessages(ctx context.Context, req *ListMessagesRequest) (*ListMessagesReply, error) {
	msgs, err := s.reports.Messages(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &ListMessagesReply{Messages: msgs}, nil
}

func (s *StudioService) ImportURL(ctx context.Context, req *ImportURLRequest) (*ReportReply, error) {
	r, err := s.reports.ImportURL(ctx, req.Id, req.Url)
	if err != nil {
		return nil, err
	}
	return &ReportReply{Report: r}, nil
}

// splitKeywords 同时支持 keywords=a&keywords=b 与 keywords=a,b
func splitKeywords(keywords []string) []string {
	return biz.MergeKeywords(nil, strings.Join(keywords, ","))
}
