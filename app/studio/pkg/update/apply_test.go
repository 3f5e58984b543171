package update

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
)

var (
	created = time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	applied = time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
)

func fixedApplier() Applier {
	return Applier{Now: func() time.Time { return applied }}
}

func sampleReport() *report.Report {
	return &report.Report{
		ID:        "report-1",
		Title:     "HBM 트렌드",
		CreatedAt: created,
		UpdatedAt: created,
		Keywords:  []string{"HBM4"},
		UserInput: "반도체 시장의 HBM 트렌드에 대해 조사해줘",
		Sections: []report.Section{
			{ID: "s1", Title: "요약", Content: "요약 내용", Type: report.SectionText},
			{ID: "s2", Title: "시장 동향", Content: "동향 내용", Type: report.SectionText},
			{
				ID:    "s3",
				Title: "점유율",
				Type:  report.SectionChart,
				ChartConfig: &report.ChartConfig{
					Type: report.ChartBar,
					Data: report.ChartData{
						Labels:   []string{"A", "B"},
						Datasets: []report.Dataset{{Label: "share", Data: []float64{60, 40}}},
					},
				},
			},
		},
	}
}

func sectionIDs(r *report.Report) []string {
	ids := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestApply_AddSection(t *testing.T) {
	in := sampleReport()
	added := report.Section{ID: "new", Title: "새 섹션", Type: report.SectionTable, TableData: &report.TableData{}}

	t.Run("append without position", func(t *testing.T) {
		out := fixedApplier().Apply(in, AddSection{Section: added})
		assert.Equal(t, []string{"s1", "s2", "s3", "new"}, sectionIDs(out))
	})

	t.Run("insert at position", func(t *testing.T) {
		pos := 1
		out := fixedApplier().Apply(in, AddSection{Section: added, Position: &pos})
		assert.Equal(t, []string{"s1", "new", "s2", "s3"}, sectionIDs(out))
	})

	t.Run("out of range appends", func(t *testing.T) {
		for _, p := range []int{-1, 4, 100} {
			pos := p
			out := fixedApplier().Apply(in, AddSection{Section: added, Position: &pos})
			assert.Equal(t, []string{"s1", "s2", "s3", "new"}, sectionIDs(out), "position %d", p)
		}
	})

	assert.Equal(t, []string{"s1", "s2", "s3"}, sectionIDs(in))
}

func TestApply_RemoveSectionKeepsOrder(t *testing.T) {
	in := sampleReport()

	out := fixedApplier().Apply(in, RemoveSection{SectionID: "s2"})

	assert.Equal(t, []string{"s1", "s3"}, sectionIDs(out))
	assert.Len(t, in.Sections, 3)
	assert.Equal(t, applied, out.UpdatedAt)
}

func TestApply_UpdateSectionPreservesIdentity(t *testing.T) {
	in := sampleReport()

	out := fixedApplier().Apply(in, UpdateSection{
		SectionID: "s2",
		Patch:     SectionPatch{Content: String("새 내용")},
	})

	s, ok := out.SectionByID("s2")
	require.True(t, ok)
	assert.Equal(t, "새 내용", s.Content)
	assert.Equal(t, "시장 동향", s.Title)
	assert.Equal(t, report.SectionText, s.Type)
	assert.Equal(t, "동향 내용", in.Sections[1].Content)
}

func TestApply_ChangeChartType(t *testing.T) {
	in := sampleReport()

	out := fixedApplier().Apply(in, ChangeChartType{SectionID: "s3", NewType: report.ChartPie})

	s, _ := out.SectionByID("s3")
	require.NotNil(t, s.ChartConfig)
	assert.Equal(t, report.ChartPie, s.ChartConfig.Type)
	assert.Equal(t, in.Sections[2].ChartConfig.Data, s.ChartConfig.Data)
	assert.Equal(t, &report.PieOptions{InnerRadius: 0, ShowLabel: report.Bool(true)}, s.ChartConfig.Options.Pie)
	assert.Equal(t, "s3", s.ID)
	assert.Equal(t, "점유율", s.Title)
	assert.Equal(t, report.SectionChart, s.Type)
	assert.Equal(t, report.ChartBar, in.Sections[2].ChartConfig.Type)
}

func TestApply_ChangeChartTypeWithoutConfigIsNoop(t *testing.T) {
	in := sampleReport()

	out := fixedApplier().Apply(in, ChangeChartType{SectionID: "s1", NewType: report.ChartPie})

	assert.Equal(t, in.Sections, out.Sections)
	assert.Equal(t, applied, out.UpdatedAt)
}

func TestApply_UpdateChartData(t *testing.T) {
	in := sampleReport()
	cfg := report.ChartConfig{Type: report.ChartLine, Data: report.ChartData{Labels: []string{"Q1"}}}

	out := fixedApplier().Apply(in, UpdateChartData{SectionID: "s3", ChartConfig: cfg})

	s, _ := out.SectionByID("s3")
	assert.Equal(t, cfg, *s.ChartConfig)
	assert.Equal(t, report.ChartBar, in.Sections[2].ChartConfig.Type)
}

func TestApply_ReorderSections(t *testing.T) {
	in := sampleReport()

	out := fixedApplier().Apply(in, ReorderSections{SectionIDs: []string{"s3", "ghost", "s1", "s3"}})

	// s2 不在列表中被丢弃，ghost 被忽略，重复的 s3 只保留一次
	assert.Equal(t, []string{"s3", "s1"}, sectionIDs(out))
}

func TestApply_UnknownSectionStillRefreshesTimestamp(t *testing.T) {
	in := sampleReport()

	out := fixedApplier().Apply(in, RemoveSection{SectionID: "missing"})

	assert.Equal(t, in.Sections, out.Sections)
	assert.Equal(t, applied, out.UpdatedAt)
	assert.Equal(t, created, in.UpdatedAt)
}

func TestApply_UpdatedAtIsMonotonic(t *testing.T) {
	in := sampleReport()
	in.UpdatedAt = applied.Add(time.Hour)

	out := fixedApplier().Apply(in, RemoveSection{SectionID: "s1"})

	assert.Equal(t, in.UpdatedAt, out.UpdatedAt)
}

func TestApply_KeepsReportFields(t *testing.T) {
	in := sampleReport()

	out := Apply(in, RemoveSection{SectionID: "s1"})

	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Title, out.Title)
	assert.Equal(t, in.CreatedAt, out.CreatedAt)
	assert.Equal(t, in.Keywords, out.Keywords)
	assert.Equal(t, in.UserInput, out.UserInput)
	assert.False(t, out.UpdatedAt.Before(in.UpdatedAt))
}
