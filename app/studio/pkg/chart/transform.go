// Package chart 把与渲染端无关的 ChartConfig 转换为图表组件需要的数据形状。
package chart

import "github.com/iWorld-y/report_studio/app/studio/pkg/report"

// Row 一行绘图数据
type Row map[string]any

// CategoricalRows 每个标签一行：label 字段 + 每个数据序列一个字段，缺失值补 0
func CategoricalRows(data report.ChartData) []Row {
	rows := make([]Row, 0, len(data.Labels))
	for i, label := range data.Labels {
		row := Row{"label": label}
		for _, ds := range data.Datasets {
			row[ds.Label] = valueAt(ds.Data, i)
		}
		rows = append(rows, row)
	}
	return rows
}

// ProportionRows 只使用第一个数据序列，生成 {type, value} 行
func ProportionRows(data report.ChartData) []Row {
	if len(data.Datasets) == 0 || len(data.Labels) == 0 {
		return []Row{}
	}
	first := data.Datasets[0]
	rows := make([]Row, 0, len(data.Labels))
	for i, label := range data.Labels {
		rows = append(rows, Row{"type": label, "value": valueAt(first.Data, i)})
	}
	return rows
}

// TransformData 把数据转换为目标类型需要的结构。
// 目前所有类型共享同一数据结构，因此只返回拷贝。
func TransformData(data report.ChartData, from, to report.ChartType) report.ChartData {
	out := report.ChartData{Labels: cloneSlice(data.Labels)}
	if data.Datasets != nil {
		out.Datasets = make([]report.Dataset, 0, len(data.Datasets))
		for _, ds := range data.Datasets {
			ds.Data = cloneSlice(ds.Data)
			out.Datasets = append(out.Datasets, ds)
		}
	}
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		v := values[i]
		if v != v { // NaN
			return 0
		}
		return v
	}
	return 0
}
