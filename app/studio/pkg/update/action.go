// Package update 定义报告修改命令以及把命令应用到报告上的纯函数。
package update

import "github.com/iWorld-y/report_studio/app/studio/pkg/report"

// Kind 命令类型标签
type Kind string

const (
	KindAddSection      Kind = "add_section"
	KindRemoveSection   Kind = "remove_section"
	KindUpdateSection   Kind = "update_section"
	KindChangeChartType Kind = "change_chart_type"
	KindUpdateChartData Kind = "update_chart_data"
	KindReorderSections Kind = "reorder_sections"
)

// Action 一条报告修改命令
type Action interface {
	Kind() Kind
	apply(sections []report.Section) []report.Section
}

// AddSection 插入小节，Position 为空或越界时追加到末尾
type AddSection struct {
	Section  report.Section
	Position *int
}

// RemoveSection 删除小节
type RemoveSection struct {
	SectionID string
}

// UpdateSection 把 Patch 中的非空字段合并到小节上
type UpdateSection struct {
	SectionID string
	Patch     SectionPatch
}

// ChangeChartType 切换图表类型
type ChangeChartType struct {
	SectionID string
	NewType   report.ChartType
}

// UpdateChartData 整体替换图表配置
type UpdateChartData struct {
	SectionID   string
	ChartConfig report.ChartConfig
}

// ReorderSections 按给定 ID 顺序重排小节
type ReorderSections struct {
	SectionIDs []string
}

// SectionPatch 小节的部分字段，ID 和类型不可修改
type SectionPatch struct {
	Title       *string                 `json:"title,omitempty"`
	Content     *string                 `json:"content,omitempty"`
	ChartConfig *report.ChartConfig     `json:"chartConfig,omitempty"`
	TableData   *report.TableData       `json:"tableData,omitempty"`
	Metadata    *report.SectionMetadata `json:"metadata,omitempty"`
}

func (AddSection) Kind() Kind      { return KindAddSection }
func (RemoveSection) Kind() Kind   { return KindRemoveSection }
func (UpdateSection) Kind() Kind   { return KindUpdateSection }
func (ChangeChartType) Kind() Kind { return KindChangeChartType }
func (UpdateChartData) Kind() Kind { return KindUpdateChartData }
func (ReorderSections) Kind() Kind { return KindReorderSections }

// String 返回指向 s 的指针，方便构造 SectionPatch
func String(s string) *string { return &s }
