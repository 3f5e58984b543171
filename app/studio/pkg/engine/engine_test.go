package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/report_studio/app/studio/pkg/config"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

// fakeGenerator 按顺序返回预设的回复
type fakeGenerator struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, input[len(input)-1].Content)
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.replies) {
		return schema.AssistantMessage(f.replies[i], nil), nil
	}
	return schema.AssistantMessage(`{"type":"none"}`, nil), nil
}

func newTestEngine(gen Generator) *Engine {
	return New(gen, config.ConcurrencyConfig{}, WithRetry(2, time.Millisecond))
}

func sampleReport() *report.Report {
	return &report.Report{
		ID: "r1",
		Sections: []report.Section{
			{ID: "section-1", Title: "요약", Type: report.SectionText},
			{ID: "section-3", Title: "점유율", Type: report.SectionChart, ChartConfig: &report.ChartConfig{Type: report.ChartBar}},
		},
	}
}

func TestRevise(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"```json\n{\"type\":\"change_chart_type\",\"sectionId\":\"section-3\",\"newType\":\"line\"}\n```"}}

	a, err := newTestEngine(gen).Revise(context.Background(), sampleReport(), "추세가 보이게 해줘")
	require.NoError(t, err)
	assert.Equal(t, update.ChangeChartType{SectionID: "section-3", NewType: report.ChartLine}, a)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "추세가 보이게 해줘")
	assert.Contains(t, gen.prompts[0], `"id":"section-3"`)
}

func TestRevise_None(t *testing.T) {
	a, err := newTestEngine(&fakeGenerator{}).Revise(context.Background(), sampleReport(), "고마워")
	require.NoError(t, err)
	assert.Nil(t, a)
}

func TestRevise_AddSectionGetsID(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`{"type":"add_section","section":{"title":"결론","content":"끝"}}`}}

	a, err := newTestEngine(gen).Revise(context.Background(), sampleReport(), "결론 넣어줘")
	require.NoError(t, err)
	add, ok := a.(update.AddSection)
	require.True(t, ok)
	assert.NotEmpty(t, add.Section.ID)
	assert.Equal(t, report.SectionText, add.Section.Type)
	assert.Equal(t, "결론", add.Section.Title)
}

func TestRevise_RetriesBadOutput(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		"잘 모르겠어요",
		`{"type":"explode"}`,
		`{"type":"remove_section","sectionId":"section-1"}`,
	}}

	a, err := newTestEngine(gen).Revise(context.Background(), sampleReport(), "요약 빼줘")
	require.NoError(t, err)
	assert.Equal(t, update.RemoveSection{SectionID: "section-1"}, a)
	assert.Equal(t, 3, gen.calls)
}

func TestRevise_EmptyReorderIsRetried(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		`{"type":"reorder_sections"}`,
		`{"type":"reorder_sections","sectionIds":["section-3","section-1"]}`,
	}}

	a, err := newTestEngine(gen).Revise(context.Background(), sampleReport(), "차트를 앞으로")
	require.NoError(t, err)
	assert.Equal(t, update.ReorderSections{SectionIDs: []string{"section-3", "section-1"}}, a)
	assert.Equal(t, 2, gen.calls)
}

func TestRevise_GivesUpAfterRetries(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"x", "y", "z", "w"}}

	_, err := newTestEngine(gen).Revise(context.Background(), sampleReport(), "?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after retries")
	assert.Equal(t, 3, gen.calls)
}

func TestRevise_RateLimitBackoff(t *testing.T) {
	gen := &fakeGenerator{
		errs:    []error{errors.New("status 429: Too Many Requests")},
		replies: []string{"", `{"type":"none"}`},
	}

	a, err := newTestEngine(gen).Revise(context.Background(), sampleReport(), "?")
	require.NoError(t, err)
	assert.Nil(t, a)
	assert.Equal(t, 2, gen.calls)
}

func TestRevise_OtherErrorsAreNotRetried(t *testing.T) {
	gen := &fakeGenerator{errs: []error{errors.New("invalid api key")}}

	_, err := newTestEngine(gen).Revise(context.Background(), sampleReport(), "?")
	assert.EqualError(t, err, "invalid api key")
	assert.Equal(t, 1, gen.calls)
}

func TestRevise_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &fakeGenerator{errs: []error{errors.New("429")}}
	e := New(gen, config.ConcurrencyConfig{}, WithRetry(2, time.Hour))

	_, err := e.Revise(ctx, sampleReport(), "?")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDraft(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`{
		"title": " HBM 리포트 ",
		"sections": [
			{"title": "요약", "type": "text", "content": "HBM 수요 증가"},
			{"title": "점유율", "type": "chart", "chartConfig": {"type": "donut", "data": {"labels": ["A"], "datasets": [{"label": "s", "data": [1]}]}}},
			{"title": "라인업", "type": "table"}
		]
	}`}}

	title, sections, err := newTestEngine(gen).Draft(context.Background(), "삼성전자(주)", []string{"HBM3E", "HBM4"}, "")
	require.NoError(t, err)

	assert.Equal(t, "HBM 리포트", title)
	require.Len(t, sections, 3)
	for _, s := range sections {
		assert.NotEmpty(t, s.ID)
	}
	assert.Equal(t, report.ChartBar, sections[1].ChartConfig.Type)
	assert.Equal(t, []string{"A"}, sections[1].ChartConfig.Data.Labels)
	assert.Equal(t, &report.TableData{Headers: []string{}, Rows: [][]string{}}, sections[2].TableData)
	assert.Contains(t, gen.prompts[0], "삼성전자(주)")
	assert.Contains(t, gen.prompts[0], "HBM3E, HBM4")
}

func TestDraft_EmptySectionsRetried(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		`{"title":"t","sections":[]}`,
		`{"title":"t","sections":[{"title":"요약","content":"c"}]}`,
	}}

	_, sections, err := newTestEngine(gen).Draft(context.Background(), "c", nil, "")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, report.SectionText, sections[0].Type)
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFence("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripFence(`  {"a":1} `))
}
