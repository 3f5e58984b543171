package update

import (
	"time"

	"github.com/iWorld-y/report_studio/app/studio/pkg/chart"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
)

// Applier 把命令应用到报告上，Now 为空时使用 time.Now
type Applier struct {
	Now func() time.Time
}

var defaultApplier = Applier{}

// Apply 使用系统时钟应用命令
func Apply(r *report.Report, a Action) *report.Report {
	return defaultApplier.Apply(r, a)
}

// Apply 返回应用命令后的新报告，输入不会被修改。
// 找不到目标小节时小节不变，但 UpdatedAt 仍会刷新。
func (ap Applier) Apply(r *report.Report, a Action) *report.Report {
	if r == nil {
		return nil
	}
	out := r.Clone()
	if a != nil {
		out.Sections = a.apply(r.Sections)
	}
	out.UpdatedAt = ap.now()
	if out.UpdatedAt.Before(r.UpdatedAt) {
		out.UpdatedAt = r.UpdatedAt
	}
	return out
}

func (ap Applier) now() time.Time {
	if ap.Now != nil {
		return ap.Now()
	}
	return time.Now()
}

func (a AddSection) apply(sections []report.Section) []report.Section {
	out := make([]report.Section, 0, len(sections)+1)
	if a.Position != nil && *a.Position >= 0 && *a.Position <= len(sections) {
		pos := *a.Position
		out = append(out, sections[:pos]...)
		out = append(out, a.Section)
		return append(out, sections[pos:]...)
	}
	out = append(out, sections...)
	return append(out, a.Section)
}

func (a RemoveSection) apply(sections []report.Section) []report.Section {
	out := make([]report.Section, 0, len(sections))
	for _, s := range sections {
		if s.ID != a.SectionID {
			out = append(out, s)
		}
	}
	return out
}

func (a UpdateSection) apply(sections []report.Section) []report.Section {
	return mapSection(sections, a.SectionID, func(s report.Section) report.Section {
		p := a.Patch
		if p.Title != nil {
			s.Title = *p.Title
		}
		if p.Content != nil {
			s.Content = *p.Content
		}
		if p.ChartConfig != nil {
			cfg := *p.ChartConfig
			s.ChartConfig = &cfg
		}
		if p.TableData != nil {
			td := *p.TableData
			s.TableData = &td
		}
		if p.Metadata != nil {
			md := *p.Metadata
			s.Metadata = &md
		}
		return s
	})
}

func (a ChangeChartType) apply(sections []report.Section) []report.Section {
	return mapSection(sections, a.SectionID, func(s report.Section) report.Section {
		if s.ChartConfig == nil {
			return s
		}
		cfg := chart.ChangeType(*s.ChartConfig, a.NewType)
		s.ChartConfig = &cfg
		return s
	})
}

func (a UpdateChartData) apply(sections []report.Section) []report.Section {
	return mapSection(sections, a.SectionID, func(s report.Section) report.Section {
		cfg := a.ChartConfig
		s.ChartConfig = &cfg
		return s
	})
}

// 未知 ID 被忽略，未出现在列表中的小节会被丢弃，重复 ID 只保留第一次
func (a ReorderSections) apply(sections []report.Section) []report.Section {
	byID := make(map[string]report.Section, len(sections))
	for _, s := range sections {
		if _, ok := byID[s.ID]; !ok {
			byID[s.ID] = s
		}
	}
	placed := make(map[string]bool, len(a.SectionIDs))
	out := make([]report.Section, 0, len(a.SectionIDs))
	for _, id := range a.SectionIDs {
		s, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		out = append(out, s)
	}
	return out
}

func mapSection(sections []report.Section, id string, fn func(report.Section) report.Section) []report.Section {
	out := make([]report.Section, len(sections))
	for i, s := range sections {
		if s.ID == id {
			s = fn(s)
		}
		out[i] = s
	}
	return out
}
