package chart

import (
	"strings"

	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
)

// ChangeType 切换图表类型：数据保持不变，新类型的选项重置为默认值，其他类型的选项保留
func ChangeType(cfg report.ChartConfig, newType report.ChartType) report.ChartConfig {
	opts := cfg.Options.Clone()
	if opts == nil {
		opts = &report.ChartOptions{}
	}
	applyDefaults(opts, newType)

	return report.ChartConfig{
		Type:    newType,
		Data:    TransformData(cfg.Data, cfg.Type, newType),
		Options: opts,
	}
}

// DefaultOptions 返回只包含 t 类型默认子选项的 ChartOptions
func DefaultOptions(t report.ChartType) *report.ChartOptions {
	opts := &report.ChartOptions{}
	applyDefaults(opts, t)
	return opts
}

func applyDefaults(opts *report.ChartOptions, t report.ChartType) {
	switch t {
	case report.ChartBar:
		opts.Bar = &report.BarOptions{Stacked: report.Bool(false), Horizontal: report.Bool(false)}
	case report.ChartPie:
		opts.Pie = &report.PieOptions{InnerRadius: 0, ShowLabel: report.Bool(true)}
	case report.ChartLine:
		opts.Line = &report.LineOptions{Smooth: report.Bool(false), ShowPoint: report.Bool(true)}
	case report.ChartArea:
		opts.Area = &report.LineOptions{Smooth: report.Bool(true), ShowPoint: report.Bool(false)}
	case report.ChartScatter:
		opts.Scatter = map[string]any{}
	case report.ChartRadar:
		opts.Radar = map[string]any{}
	}
}

type typeKeyword struct {
	word string
	typ  report.ChartType
}

// 顺序即优先级
var typeKeywords = []typeKeyword{
	{"바", report.ChartBar},
	{"막대", report.ChartBar},
	{"bar", report.ChartBar},
	{"원형", report.ChartPie},
	{"파이", report.ChartPie},
	{"pie", report.ChartPie},
	{"선", report.ChartLine},
	{"라인", report.ChartLine},
	{"line", report.ChartLine},
	{"영역", report.ChartArea},
	{"area", report.ChartArea},
}

// "바꿔줘" 之类的动词里含有 "바"，匹配前先遮掉
var verbMask = strings.NewReplacer("바꿔", "  ", "바꾸", "  ", "바뀌", "  ")

// DetectType 在文本中查找与当前类型不同的目标图表类型
func DetectType(text string, current report.ChartType) (report.ChartType, bool) {
	lower := verbMask.Replace(strings.ToLower(text))
	for _, kw := range typeKeywords {
		if strings.Contains(lower, kw.word) && kw.typ != current {
			return kw.typ, true
		}
	}
	return "", false
}
