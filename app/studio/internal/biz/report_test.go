package biz

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/report_studio/app/studio/pkg/catalog"
	"github.com/iWorld-y/report_studio/app/studio/pkg/chart"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

// mockReportRepo 模拟报告仓库
type mockReportRepo struct {
	reports map[string]*report.Report
	saves   int
}

func newMockReportRepo(rs ...*report.Report) *mockReportRepo {
	m := &mockReportRepo{reports: map[string]*report.Report{}}
	for _, r := range rs {
		m.reports[r.ID] = r
	}
	return m
}

func (m *mockReportRepo) SaveReport(_ context.Context, r *report.Report) error {
	m.saves++
	m.reports[r.ID] = r
	return nil
}

func (m *mockReportRepo) GetReport(_ context.Context, id string) (*report.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return r, nil
}

func (m *mockReportRepo) ListReports(_ context.Context, page, pageSize int) ([]*report.Report, int, error) {
	var out []*report.Report
	for _, r := range m.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

// mockMessageRepo 模拟消息仓库
type mockMessageRepo struct {
	msgs []*Message
}

func (m *mockMessageRepo) AppendMessages(_ context.Context, msgs ...*Message) error {
	m.msgs = append(m.msgs, msgs...)
	return nil
}

func (m *mockMessageRepo) ListMessages(_ context.Context, reportID string) ([]*Message, error) {
	var out []*Message
	for _, msg := range m.msgs {
		if msg.ReportID == reportID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// mockAssistant 模拟模型助手
type mockAssistant struct {
	action   update.Action
	err      error
	title    string
	sections []report.Section
	revised  []string
}

func (m *mockAssistant) Revise(_ context.Context, _ *report.Report, text string) (update.Action, error) {
	m.revised = append(m.revised, text)
	return m.action, m.err
}

func (m *mockAssistant) Draft(_ context.Context, _ string, _ []string, _ string) (string, []report.Section, error) {
	return m.title, m.sections, m.err
}

type mockFetcher struct {
	article *Article
	err     error
}

func (m *mockFetcher) Fetch(_ context.Context, url string) (*Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	a := *m.article
	a.URL = url
	return &a, nil
}

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func seedReport() *report.Report {
	return &report.Report{
		ID:        "r1",
		Title:     catalog.DefaultReportTitle,
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
		Sections:  catalog.SeedSections(),
	}
}

func newTestUseCase(repo ReportRepo, msgs MessageRepo, a Assistant, f Fetcher) *ReportUseCase {
	uc := NewReportUseCase(repo, msgs, a, f, log.DefaultLogger)
	uc.now = func() time.Time { return testNow }
	return uc
}

func TestReportUseCase_CreateFromTemplate(t *testing.T) {
	repo, msgs := newMockReportRepo(), &mockMessageRepo{}
	uc := newTestUseCase(repo, msgs, nil, nil)

	r, created, err := uc.Create(context.Background(), Brief{
		CompanyID:  "samsung",
		Keywords:   []string{"HBM4", "GPU 수요"},
		Additional: " HBM3E, ,HBM4,AI 데이터센터 ",
		UserInput:  "HBM 시장 분석해줘",
	})
	require.NoError(t, err)

	assert.Contains(t, r.ID, "report-")
	assert.Equal(t, catalog.DefaultReportTitle, r.Title)
	assert.Equal(t, []string{"HBM4", "GPU 수요", "HBM3E", "AI 데이터센터"}, r.Keywords)
	assert.Len(t, r.Sections, 5)
	assert.Equal(t, testNow, r.CreatedAt)
	assert.Equal(t, testNow, r.UpdatedAt)
	assert.Same(t, r, repo.reports[r.ID])

	require.Len(t, created, 3)
	assert.Equal(t, MessageUser, created[0].Type)
	assert.Equal(t, MessageAssistant, created[1].Type)
	assert.Equal(t, MessageReportPreview, created[2].Type)
	assert.Equal(t, r.ID, created[2].ReportID)
	assert.Equal(t, created, msgs.msgs)
}

func TestReportUseCase_CreateWithDraft(t *testing.T) {
	a := &mockAssistant{title: "HBM 초안", sections: []report.Section{{ID: "s1", Title: "요약", Type: report.SectionText}}}
	uc := newTestUseCase(newMockReportRepo(), &mockMessageRepo{}, a, nil)

	r, msgs, err := uc.Create(context.Background(), Brief{})
	require.NoError(t, err)
	assert.Equal(t, "HBM 초안", r.Title)
	assert.Len(t, r.Sections, 1)
	assert.Len(t, msgs, 2, "no user message without input")
}

func TestReportUseCase_CreateDraftFailureFallsBack(t *testing.T) {
	a := &mockAssistant{err: errors.New("llm down")}
	uc := newTestUseCase(newMockReportRepo(), &mockMessageRepo{}, a, nil)

	r, _, err := uc.Create(context.Background(), Brief{})
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultReportTitle, r.Title)
	assert.Len(t, r.Sections, 5)
}

func TestReportUseCase_CreateUnknownCompany(t *testing.T) {
	uc := newTestUseCase(newMockReportRepo(), &mockMessageRepo{}, nil, nil)

	_, _, err := uc.Create(context.Background(), Brief{CompanyID: "nope"})
	assert.True(t, kerrors.IsNotFound(err))
	assert.Equal(t, "COMPANY_NOT_FOUND", kerrors.Reason(err))
}

func TestReportUseCase_EditByRule(t *testing.T) {
	repo, msgs := newMockReportRepo(seedReport()), &mockMessageRepo{}
	a := &mockAssistant{}
	uc := newTestUseCase(repo, msgs, a, nil)

	res, err := uc.Edit(context.Background(), "r1", "원형 그래프로 바꿔줘")
	require.NoError(t, err)

	assert.Equal(t, update.ChangeChartType{SectionID: "section-3", NewType: report.ChartPie}, res.Action)
	s, _ := res.Report.SectionByID("section-3")
	assert.Equal(t, report.ChartPie, s.ChartConfig.Type)
	assert.Equal(t, testNow, res.Report.UpdatedAt)
	assert.Equal(t, `"HBM 시장 점유율 (2024)" 섹션의 차트를 pie 타입으로 변경했습니다.`, res.Reply.Content)
	assert.Empty(t, a.revised, "assistant is not consulted when a rule matches")
	assert.Same(t, res.Report, repo.reports["r1"])

	require.Len(t, msgs.msgs, 2)
	assert.Equal(t, MessageUser, msgs.msgs[0].Type)
	assert.Equal(t, "원형 그래프로 바꿔줘", msgs.msgs[0].Content)
	assert.Equal(t, res.Reply, msgs.msgs[1])
}

func TestReportUseCase_EditReplies(t *testing.T) {
	tests := []struct {
		text  string
		reply string
	}{
		{"표를 하나 추가해줘", `"새 섹션" 섹션을 추가했습니다.`},
		{"요약 삭제해줘", `"요약" 섹션을 삭제했습니다.`},
		{"시장 동향 수정해줘. 내용은 수요 둔화", `"시장 동향" 섹션을 업데이트했습니다.`},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			uc := newTestUseCase(newMockReportRepo(seedReport()), &mockMessageRepo{}, nil, nil)
			res, err := uc.Edit(context.Background(), "r1", tt.text)
			require.NoError(t, err)
			assert.NotNil(t, res.Action)
			assert.Equal(t, tt.reply, res.Reply.Content)
		})
	}
}

func TestReportUseCase_EditFallsBackToAssistant(t *testing.T) {
	a := &mockAssistant{action: update.ReorderSections{SectionIDs: []string{"section-2", "section-1"}}}
	uc := newTestUseCase(newMockReportRepo(seedReport()), &mockMessageRepo{}, a, nil)

	res, err := uc.Edit(context.Background(), "r1", "시장 동향을 맨 앞으로")
	require.NoError(t, err)

	assert.Equal(t, []string{"시장 동향을 맨 앞으로"}, a.revised)
	require.Len(t, res.Report.Sections, 2)
	assert.Equal(t, "section-2", res.Report.Sections[0].ID)
	assert.Equal(t, "리포트를 업데이트했습니다.", res.Reply.Content)
}

func TestReportUseCase_EditUnrecognized(t *testing.T) {
	for name, a := range map[string]Assistant{
		"no assistant":     nil,
		"assistant none":   &mockAssistant{},
		"assistant broken": &mockAssistant{err: errors.New("timeout")},
	} {
		t.Run(name, func(t *testing.T) {
			repo := newMockReportRepo(seedReport())
			uc := newTestUseCase(repo, &mockMessageRepo{}, a, nil)

			res, err := uc.Edit(context.Background(), "r1", "안녕")
			require.NoError(t, err)
			assert.Nil(t, res.Action)
			assert.Equal(t, 0, repo.saves)
			assert.Equal(t, `리포트 수정 요청을 확인했습니다. "안녕"에 따라 리포트를 업데이트하겠습니다.`, res.Reply.Content)
		})
	}
}

func TestReportUseCase_EditErrors(t *testing.T) {
	uc := newTestUseCase(newMockReportRepo(seedReport()), &mockMessageRepo{}, nil, nil)

	_, err := uc.Edit(context.Background(), "r1", "   ")
	assert.Equal(t, "EMPTY_REQUEST", kerrors.Reason(err))

	_, err = uc.Edit(context.Background(), "missing", "요약 삭제")
	assert.Equal(t, "REPORT_NOT_FOUND", kerrors.Reason(err))
}

func TestReportUseCase_ApplyAction(t *testing.T) {
	orig := seedReport()
	uc := newTestUseCase(newMockReportRepo(orig), &mockMessageRepo{}, nil, nil)

	out, err := uc.ApplyAction(context.Background(), "r1", update.RemoveSection{SectionID: "section-1"})
	require.NoError(t, err)
	assert.Len(t, out.Sections, 4)
	assert.Len(t, orig.Sections, 5)
}

func TestReportUseCase_ReplaceSections(t *testing.T) {
	uc := newTestUseCase(newMockReportRepo(seedReport()), &mockMessageRepo{}, nil, nil)

	out, err := uc.ReplaceSections(context.Background(), "r1", []report.Section{{ID: "only", Title: "하나", Type: report.SectionText}})
	require.NoError(t, err)
	assert.Equal(t, []report.Section{{ID: "only", Title: "하나", Type: report.SectionText}}, out.Sections)
	assert.Equal(t, testNow, out.UpdatedAt)
}

func TestReportUseCase_Chart(t *testing.T) {
	uc := newTestUseCase(newMockReportRepo(seedReport()), &mockMessageRepo{}, nil, nil)

	d, err := uc.Chart(context.Background(), "r1", "section-3")
	require.NoError(t, err)
	assert.Equal(t, report.ChartBar, d.Type)
	assert.Equal(t, chart.ShapeCategorical, d.Shape)
	assert.Len(t, d.Data, 4)

	_, err = uc.Chart(context.Background(), "r1", "section-1")
	assert.Equal(t, "NOT_A_CHART", kerrors.Reason(err))

	_, err = uc.Chart(context.Background(), "r1", "section-9")
	assert.Equal(t, "SECTION_NOT_FOUND", kerrors.Reason(err))
}

func TestReportUseCase_Messages(t *testing.T) {
	msgs := &mockMessageRepo{}
	uc := newTestUseCase(newMockReportRepo(seedReport()), msgs, nil, nil)

	_, err := uc.Edit(context.Background(), "r1", "요약 삭제해줘")
	require.NoError(t, err)

	list, err := uc.Messages(context.Background(), "r1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.Messages(context.Background(), "nope")
	assert.Equal(t, "REPORT_NOT_FOUND", kerrors.Reason(err))
}

func TestReportUseCase_ImportURL(t *testing.T) {
	f := &mockFetcher{article: &Article{Title: " 기사 제목 ", Text: "  본문  "}}
	uc := newTestUseCase(newMockReportRepo(seedReport()), &mockMessageRepo{}, nil, f)

	out, err := uc.ImportURL(context.Background(), "r1", "https://example.com/a")
	require.NoError(t, err)

	require.Len(t, out.Sections, 6)
	last := out.Sections[5]
	assert.Equal(t, "기사 제목", last.Title)
	assert.Equal(t, "본문", last.Content)
	assert.Equal(t, report.SectionText, last.Type)
	assert.Equal(t, "출처: https://example.com/a", last.Metadata.Description)
}

func TestReportUseCase_ImportURLFetchError(t *testing.T) {
	uc := newTestUseCase(newMockReportRepo(seedReport()), &mockMessageRepo{}, nil, &mockFetcher{err: errors.New("403")})

	_, err := uc.ImportURL(context.Background(), "r1", "https://example.com/a")
	assert.EqualError(t, err, "403")
}

func TestReportUseCase_ListDefaults(t *testing.T) {
	uc := newTestUseCase(newMockReportRepo(seedReport()), &mockMessageRepo{}, nil, nil)

	list, total, err := uc.List(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}

func TestMergeKeywords(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, MergeKeywords([]string{"a", " b"}, "b, c,,a"))
	assert.Equal(t, []string{}, MergeKeywords(nil, ""))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "가나", truncateRunes("가나다", 2))
	assert.Equal(t, "가나다", truncateRunes("가나다", 5))
}
