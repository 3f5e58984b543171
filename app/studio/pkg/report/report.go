package report

import "time"

// SectionType 小节类型
type SectionType string

const (
	SectionText  SectionType = "text"
	SectionChart SectionType = "chart"
	SectionTable SectionType = "table"
)

// ChartType 图表类型，scatter/radar 仅声明，渲染时按 bar 处理
type ChartType string

const (
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
	ChartPie     ChartType = "pie"
	ChartArea    ChartType = "area"
	ChartScatter ChartType = "scatter"
	ChartRadar   ChartType = "radar"
)

// Valid 是否为已声明的图表类型
func (t ChartType) Valid() bool {
	switch t {
	case ChartBar, ChartLine, ChartPie, ChartArea, ChartScatter, ChartRadar:
		return true
	}
	return false
}

// Dataset 单个数据序列
type Dataset struct {
	Label string    `json:"label" yaml:"label"`
	Data  []float64 `json:"data" yaml:"data"`
	Color string    `json:"color,omitempty" yaml:"color,omitempty"`
}

// ChartData 带标签的序列数据
type ChartData struct {
	Labels   []string  `json:"labels" yaml:"labels"`
	Datasets []Dataset `json:"datasets" yaml:"datasets"`
}

// BarOptions 柱状图选项
type BarOptions struct {
	Stacked    *bool `json:"stacked,omitempty" yaml:"stacked,omitempty"`
	Horizontal *bool `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
}

// PieOptions 饼图选项
type PieOptions struct {
	InnerRadius float64 `json:"innerRadius" yaml:"innerRadius"`
	ShowLabel   *bool   `json:"showLabel,omitempty" yaml:"showLabel,omitempty"`
}

// LineOptions 折线图/面积图选项
type LineOptions struct {
	Smooth    *bool `json:"smooth,omitempty" yaml:"smooth,omitempty"`
	ShowPoint *bool `json:"showPoint,omitempty" yaml:"showPoint,omitempty"`
}

// ChartOptions 图表展示选项，各类型的子选项互相独立
type ChartOptions struct {
	Colors     []string `json:"colors,omitempty" yaml:"colors,omitempty"`
	ShowLegend *bool    `json:"showLegend,omitempty" yaml:"showLegend,omitempty"`
	ShowGrid   *bool    `json:"showGrid,omitempty" yaml:"showGrid,omitempty"`
	XAxisLabel string   `json:"xAxisLabel,omitempty" yaml:"xAxisLabel,omitempty"`
	YAxisLabel string   `json:"yAxisLabel,omitempty" yaml:"yAxisLabel,omitempty"`

	Bar     *BarOptions    `json:"bar,omitempty" yaml:"bar,omitempty"`
	Pie     *PieOptions    `json:"pie,omitempty" yaml:"pie,omitempty"`
	Line    *LineOptions   `json:"line,omitempty" yaml:"line,omitempty"`
	Area    *LineOptions   `json:"area,omitempty" yaml:"area,omitempty"`
	Scatter map[string]any `json:"scatter,omitempty" yaml:"scatter,omitempty"`
	Radar   map[string]any `json:"radar,omitempty" yaml:"radar,omitempty"`
}

// ChartConfig 与渲染端无关的图表描述
type ChartConfig struct {
	Type    ChartType     `json:"type" yaml:"type"`
	Data    ChartData     `json:"data" yaml:"data"`
	Options *ChartOptions `json:"options,omitempty" yaml:"options,omitempty"`
}

// TableData 表格数据，rows[i] 的长度应与 headers 一致但不强制
type TableData struct {
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// SectionMetadata 小节附加信息
type SectionMetadata struct {
	Description        string    `json:"description,omitempty" yaml:"description,omitempty"`
	SuggestedChartType ChartType `json:"suggestedChartType,omitempty" yaml:"suggestedChartType,omitempty"`
}

// Section 报告中的一个小节
type Section struct {
	ID          string           `json:"id" yaml:"id"`
	Title       string           `json:"title" yaml:"title"`
	Content     string           `json:"content" yaml:"content"`
	Type        SectionType      `json:"type" yaml:"type"`
	ChartConfig *ChartConfig     `json:"chartConfig,omitempty" yaml:"chartConfig,omitempty"`
	TableData   *TableData       `json:"tableData,omitempty" yaml:"tableData,omitempty"`
	Metadata    *SectionMetadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Report 报告文档
type Report struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
	Sections  []Section `json:"sections" yaml:"sections"`
	Keywords  []string  `json:"keywords" yaml:"keywords"`
	UserInput string    `json:"userInput" yaml:"userInput"`
}

// SectionByID 按 ID 查找小节
func (r *Report) SectionByID(id string) (Section, bool) {
	for _, s := range r.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Clone 深拷贝报告，修改副本不会影响原报告
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	out := *r
	if r.Sections != nil {
		out.Sections = make([]Section, len(r.Sections))
		for i, s := range r.Sections {
			out.Sections[i] = s.Clone()
		}
	}
	out.Keywords = cloneSlice(r.Keywords)
	return &out
}

// Clone 深拷贝小节
func (s Section) Clone() Section {
	out := s
	if s.ChartConfig != nil {
		cfg := s.ChartConfig.Clone()
		out.ChartConfig = &cfg
	}
	if s.TableData != nil {
		td := TableData{Headers: cloneSlice(s.TableData.Headers)}
		if s.TableData.Rows != nil {
			td.Rows = make([][]string, len(s.TableData.Rows))
			for i, row := range s.TableData.Rows {
				td.Rows[i] = cloneSlice(row)
			}
		}
		out.TableData = &td
	}
	if s.Metadata != nil {
		m := *s.Metadata
		out.Metadata = &m
	}
	return out
}

// Clone 深拷贝图表配置
func (c ChartConfig) Clone() ChartConfig {
	out := c
	out.Data.Labels = cloneSlice(c.Data.Labels)
	if c.Data.Datasets != nil {
		out.Data.Datasets = make([]Dataset, len(c.Data.Datasets))
		for i, d := range c.Data.Datasets {
			d.Data = cloneSlice(d.Data)
			out.Data.Datasets[i] = d
		}
	}
	out.Options = c.Options.Clone()
	return out
}

// Clone 深拷贝选项
func (o *ChartOptions) Clone() *ChartOptions {
	if o == nil {
		return nil
	}
	out := *o
	out.Colors = cloneSlice(o.Colors)
	if o.Bar != nil {
		b := *o.Bar
		out.Bar = &b
	}
	if o.Pie != nil {
		p := *o.Pie
		out.Pie = &p
	}
	if o.Line != nil {
		l := *o.Line
		out.Line = &l
	}
	if o.Area != nil {
		a := *o.Area
		out.Area = &a
	}
	out.Scatter = cloneMap(o.Scatter)
	out.Radar = cloneMap(o.Radar)
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Bool 返回指向 v 的指针
func Bool(v bool) *bool { return &v }
