// Package intent 把用户的自由文本请求解析为报告修改命令。
//
// 解析器是按顺序匹配的规则表，第一条命中的规则生效。
// 创建类请求优先于删除/修改，避免 "새 차트 만들어줘" 之类的请求被误认为对已有小节的操作。
// 无法识别时返回 nil，由调用方交给模型处理。
package intent

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/iWorld-y/report_studio/app/studio/pkg/chart"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

// DefaultSectionTitle 未能提取标题时使用的占位标题
const DefaultSectionTitle = "새 섹션"

var (
	addTriggers    = []string{"추가", "만들어", "생성", "add", "create"}
	removeTriggers = []string{"삭제", "제거", "지워", "delete", "remove"}
	updateTriggers = []string{"수정", "변경", "바꿔", "update", "change"}

	chartWords = []string{"차트", "그래프", "chart"}
	tableWords = []string{"표", "테이블", "table"}
)

var (
	quotedTitle = regexp.MustCompile(`"([^"]+)"|'([^']+)'|“([^”]+)”`)
	markedTitle = regexp.MustCompile(`(?i)(?:제목[은는]?|titled|called|title is)\s*([^.!?\n]+)`)
	contentText = regexp.MustCompile(`(?i)내용[은는]?\s*([^.!?\n]+)|content is\s+([^.!?\n]+)|to\s+([^.!?\n]+)`)
)

// Parser 规则解析器，NewID 为空时使用 uuid 生成小节 ID
type Parser struct {
	NewID func() string
}

type request struct {
	text   string
	lower  string
	report *report.Report
}

type rule struct {
	name  string
	match func(p *Parser, req *request) update.Action
}

// 顺序即优先级
var rules = []rule{
	{"add_section", (*Parser).matchAdd},
	{"remove_section", (*Parser).matchRemove},
	{"change_chart_type", (*Parser).matchChartType},
	{"update_section", (*Parser).matchUpdate},
}

var defaultParser = &Parser{}

// Parse 使用默认解析器解析请求
func Parse(text string, r *report.Report) update.Action {
	return defaultParser.Parse(text, r)
}

// Parse 按规则顺序解析请求，没有命中时返回 nil
func (p *Parser) Parse(text string, r *report.Report) update.Action {
	a, _ := p.Match(text, r)
	return a
}

// Match 与 Parse 相同，同时返回命中的规则名
func (p *Parser) Match(text string, r *report.Report) (update.Action, string) {
	if r == nil {
		r = &report.Report{}
	}
	req := &request{text: text, lower: strings.ToLower(text), report: r}
	for _, rl := range rules {
		if a := rl.match(p, req); a != nil {
			return a, rl.name
		}
	}
	return nil, ""
}

func (p *Parser) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return "section-" + uuid.NewString()
}

func (p *Parser) matchAdd(req *request) update.Action {
	if !containsAny(req.lower, addTriggers) {
		return nil
	}

	kind := report.SectionText
	switch {
	case containsAny(req.lower, chartWords):
		kind = report.SectionChart
	case containsAny(req.lower, tableWords):
		kind = report.SectionTable
	}

	section := report.Section{
		ID:    p.newID(),
		Title: extractTitle(req.text),
		Type:  kind,
	}
	switch kind {
	case report.SectionChart:
		section.ChartConfig = &report.ChartConfig{
			Type: report.ChartBar,
			Data: report.ChartData{Labels: []string{}, Datasets: []report.Dataset{}},
		}
	case report.SectionTable:
		section.TableData = &report.TableData{Headers: []string{}, Rows: [][]string{}}
	}
	return update.AddSection{Section: section}
}

func (p *Parser) matchRemove(req *request) update.Action {
	if !containsAny(req.lower, removeTriggers) {
		return nil
	}
	if s, ok := findByTitle(req); ok {
		return update.RemoveSection{SectionID: s.ID}
	}
	return nil
}

func (p *Parser) matchChartType(req *request) update.Action {
	for _, s := range req.report.Sections {
		if s.Type != report.SectionChart || s.ChartConfig == nil {
			continue
		}
		if to, ok := chart.DetectType(req.text, s.ChartConfig.Type); ok {
			return update.ChangeChartType{SectionID: s.ID, NewType: to}
		}
	}
	return nil
}

func (p *Parser) matchUpdate(req *request) update.Action {
	if !containsAny(req.lower, updateTriggers) {
		return nil
	}
	s, ok := findByTitle(req)
	if !ok {
		return nil
	}
	content, ok := firstGroup(contentText, req.text)
	if !ok {
		return nil
	}
	return update.UpdateSection{SectionID: s.ID, Patch: update.SectionPatch{Content: update.String(content)}}
}

// extractTitle 先取引号内的文本，再取 "제목은 ..." 之后的文本
func extractTitle(text string) string {
	if t, ok := firstGroup(quotedTitle, text); ok {
		return t
	}
	if t, ok := firstGroup(markedTitle, text); ok {
		return t
	}
	return DefaultSectionTitle
}

// findByTitle 大小写不敏感的子串匹配，按小节顺序取第一个；空标题不参与匹配
func findByTitle(req *request) (report.Section, bool) {
	for _, s := range req.report.Sections {
		title := strings.ToLower(strings.TrimSpace(s.Title))
		if title == "" {
			continue
		}
		if strings.Contains(req.lower, title) {
			return s, true
		}
	}
	return report.Section{}, false
}

func firstGroup(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g = strings.TrimSpace(g); g != "" {
			return g, true
		}
	}
	return "", false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
