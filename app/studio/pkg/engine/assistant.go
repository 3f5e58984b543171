package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iWorld-y/report_studio/app/studio/pkg/logger"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

const jsonSystemPrompt = "你是一个 JSON 生成器。请只输出 JSON 字符串，不要包含任何 markdown 标记。"

const revisePrompt = `你是报告编辑助手。下面是当前报告的小节列表（JSON）以及用户的修改请求。
请把请求转换为一条修改命令，严格按照以下 JSON 格式之一返回：
{"type":"add_section","section":{"id":"...","title":"...","content":"...","type":"text|chart|table"},"position":0}
{"type":"remove_section","sectionId":"..."}
{"type":"update_section","sectionId":"...","updates":{"title":"...","content":"..."}}
{"type":"change_chart_type","sectionId":"...","newType":"bar|line|pie|area|scatter|radar"}
{"type":"update_chart_data","sectionId":"...","chartConfig":{"type":"bar","data":{"labels":[],"datasets":[]}}}
{"type":"reorder_sections","sectionIds":["..."]}
无法对应到任何命令时返回 {"type":"none"}。

报告小节：
%s

用户请求：
%s`

const draftPrompt = `你是资深行业分析师。请为公司【%s】撰写一份分析报告初稿，重点关注以下关键词：%s。
用户补充说明：%s
报告内容使用韩语。请严格按照以下 JSON 格式返回：
{
	"title": "报告标题",
	"sections": [
		{"title": "요약", "type": "text", "content": "..."},
		{"title": "...", "type": "chart", "chartConfig": {"type": "bar", "data": {"labels": ["..."], "datasets": [{"label": "...", "data": [1, 2]}]}}},
		{"title": "...", "type": "table", "tableData": {"headers": ["..."], "rows": [["..."]]}}
	]
}
至少包含一个 text 小节，chart 与 table 小节可选。`

// Revise 让模型把自由文本请求转换为修改命令，模型认为无需修改时返回 nil
func (e *Engine) Revise(ctx context.Context, r *report.Report, text string) (update.Action, error) {
	var sections []report.Section
	if r != nil {
		sections = r.Sections
	}
	payload, err := json.Marshal(sections)
	if err != nil {
		return nil, fmt.Errorf("marshal sections: %w", err)
	}

	var action update.Action
	err = e.generateJSON(ctx, jsonSystemPrompt, fmt.Sprintf(revisePrompt, payload, text), func(data []byte) error {
		var env update.Envelope
		if err := decodeStrict(data, &env); err != nil {
			return err
		}
		a, err := env.Action()
		if err != nil {
			return err
		}
		action = normalizeAction(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if action != nil {
		logger.Log.Infof("模型返回修改命令: %s", action.Kind())
	}
	return action, nil
}

// normalizeAction 补齐模型常遗漏的字段
func normalizeAction(a update.Action) update.Action {
	add, ok := a.(update.AddSection)
	if !ok {
		return a
	}
	add.Section = normalizeSection(add.Section)
	return add
}

type draftResult struct {
	Title    string           `json:"title"`
	Sections []report.Section `json:"sections"`
}

// Draft 根据公司与关键词起草报告标题与小节
func (e *Engine) Draft(ctx context.Context, company string, keywords []string, userInput string) (string, []report.Section, error) {
	if userInput == "" {
		userInput = "无"
	}
	prompt := fmt.Sprintf(draftPrompt, company, strings.Join(keywords, ", "), userInput)

	var res draftResult
	err := e.generateJSON(ctx, jsonSystemPrompt, prompt, func(data []byte) error {
		res = draftResult{}
		if err := decodeStrict(data, &res); err != nil {
			return err
		}
		if len(res.Sections) == 0 {
			return errors.New("draft has no sections")
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	for i := range res.Sections {
		res.Sections[i] = normalizeSection(res.Sections[i])
	}
	logger.Log.Infof("报告初稿生成完成: %s (%d 个小节)", res.Title, len(res.Sections))
	return strings.TrimSpace(res.Title), res.Sections, nil
}

func normalizeSection(s report.Section) report.Section {
	if s.ID == "" {
		s.ID = "section-" + uuid.NewString()
	}
	switch s.Type {
	case report.SectionChart:
		if s.ChartConfig == nil {
			s.ChartConfig = &report.ChartConfig{Type: report.ChartBar}
		}
		if !s.ChartConfig.Type.Valid() {
			s.ChartConfig.Type = report.ChartBar
		}
	case report.SectionTable:
		if s.TableData == nil {
			s.TableData = &report.TableData{Headers: []string{}, Rows: [][]string{}}
		}
	default:
		s.Type = report.SectionText
	}
	return s
}
