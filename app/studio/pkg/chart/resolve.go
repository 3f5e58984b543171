package chart

import "github.com/iWorld-y/report_studio/app/studio/pkg/report"

// DefaultColor 数据序列未指定颜色时使用的主题色
const DefaultColor = "#7f6bff"

// Shape 绘图数据的形状
type Shape string

const (
	ShapeCategorical Shape = "categorical"
	ShapeProportion  Shape = "proportion"
)

// Descriptor 图表组件的字段与样式描述
type Descriptor struct {
	Type  report.ChartType `json:"type"`
	Shape Shape            `json:"shape"`
	Data  []Row            `json:"data"`

	XField  string   `json:"xField,omitempty"`
	YFields []string `json:"yField,omitempty"`
	Colors  []string `json:"color"`

	Stacked    bool `json:"isStack"`
	Grouped    bool `json:"isGroup"`
	Horizontal bool `json:"horizontal,omitempty"`

	AngleField  string  `json:"angleField,omitempty"`
	ColorField  string  `json:"colorField,omitempty"`
	InnerRadius float64 `json:"innerRadius,omitempty"`
	ShowLabel   bool    `json:"showLabel"`
	LabelType   string  `json:"labelType,omitempty"`

	Smooth    bool `json:"smooth"`
	ShowPoint bool `json:"showPoint"`
}

// Resolve 按图表类型生成描述，未实现的类型回退到柱状图
func Resolve(cfg report.ChartConfig) Descriptor {
	opts := cfg.Options
	if opts == nil {
		opts = &report.ChartOptions{}
	}

	switch cfg.Type {
	case report.ChartPie:
		return resolvePie(cfg, opts)
	case report.ChartLine:
		d := categorical(cfg, opts)
		d.Smooth = boolValue(lineOption(opts.Line, func(l *report.LineOptions) *bool { return l.Smooth }), false)
		d.ShowPoint = boolValue(lineOption(opts.Line, func(l *report.LineOptions) *bool { return l.ShowPoint }), true)
		return d
	case report.ChartArea:
		// 面积图与折线图共用 options.line，options.area 只在切换类型时写入
		d := categorical(cfg, opts)
		d.Smooth = boolValue(lineOption(opts.Line, func(l *report.LineOptions) *bool { return l.Smooth }), true)
		d.ShowPoint = boolValue(lineOption(opts.Line, func(l *report.LineOptions) *bool { return l.ShowPoint }), true)
		return d
	default:
		d := categorical(cfg, opts)
		d.Type = report.ChartBar
		if opts.Bar != nil {
			d.Stacked = boolValue(opts.Bar.Stacked, false)
			d.Horizontal = boolValue(opts.Bar.Horizontal, false)
		}
		d.Grouped = !d.Stacked && len(cfg.Data.Datasets) > 1
		return d
	}
}

func categorical(cfg report.ChartConfig, opts *report.ChartOptions) Descriptor {
	fields := make([]string, 0, len(cfg.Data.Datasets))
	for _, ds := range cfg.Data.Datasets {
		fields = append(fields, ds.Label)
	}
	return Descriptor{
		Type:    cfg.Type,
		Shape:   ShapeCategorical,
		Data:    CategoricalRows(cfg.Data),
		XField:  "label",
		YFields: fields,
		Colors:  seriesColors(cfg.Data, opts),
	}
}

func resolvePie(cfg report.ChartConfig, opts *report.ChartOptions) Descriptor {
	d := Descriptor{
		Type:       report.ChartPie,
		Shape:      ShapeProportion,
		Data:       ProportionRows(cfg.Data),
		AngleField: "value",
		ColorField: "type",
		ShowLabel:  true,
	}
	switch {
	case len(opts.Colors) > 0:
		d.Colors = append([]string(nil), opts.Colors...)
	case len(cfg.Data.Datasets) > 0 && cfg.Data.Datasets[0].Color != "":
		d.Colors = []string{cfg.Data.Datasets[0].Color}
	default:
		d.Colors = []string{DefaultColor}
	}
	if opts.Pie != nil {
		d.InnerRadius = opts.Pie.InnerRadius
		d.ShowLabel = boolValue(opts.Pie.ShowLabel, true)
	}
	if d.ShowLabel {
		d.LabelType = "outer"
	}
	return d
}

func seriesColors(data report.ChartData, opts *report.ChartOptions) []string {
	if len(opts.Colors) > 0 {
		return append([]string(nil), opts.Colors...)
	}
	colors := make([]string, 0, len(data.Datasets))
	for _, ds := range data.Datasets {
		if ds.Color != "" {
			colors = append(colors, ds.Color)
		} else {
			colors = append(colors, DefaultColor)
		}
	}
	return colors
}

func lineOption(l *report.LineOptions, get func(*report.LineOptions) *bool) *bool {
	if l == nil {
		return nil
	}
	return get(l)
}

func boolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
