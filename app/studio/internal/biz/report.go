package biz

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/report_studio/app/studio/pkg/catalog"
	"github.com/iWorld-y/report_studio/app/studio/pkg/chart"
	"github.com/iWorld-y/report_studio/app/studio/pkg/intent"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

// 导入文章时正文最多保留的字符数
const maxImportRunes = 5000

// MessageType 对话消息类型
type MessageType string

const (
	MessageUser             MessageType = "user"
	MessageAssistant        MessageType = "assistant"
	MessageKeywordSelection MessageType = "keyword-selection"
	MessageReportPreview    MessageType = "report-preview"
)

// Message 报告对话消息
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content,omitempty"`
	ReportID  string      `json:"reportId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Brief 创建报告的输入
type Brief struct {
	CompanyID  string
	Keywords   []string
	Additional string // 逗号分隔的补充关键词
	UserInput  string
}

// Article 从网页导入的文章
type Article struct {
	URL   string
	Title string
	Text  string
}

// ReportRepo 报告仓库接口
type ReportRepo interface {
	// SaveReport 新建或覆盖报告
	SaveReport(ctx context.Context, r *report.Report) error
	// GetReport 获取报告，不存在时返回 ErrReportNotFound
	GetReport(ctx context.Context, id string) (*report.Report, error)
	// ListReports 按创建时间倒序分页
	ListReports(ctx context.Context, page, pageSize int) ([]*report.Report, int, error)
}

// MessageRepo 对话消息仓库接口
type MessageRepo interface {
	AppendMessages(ctx context.Context, msgs ...*Message) error
	ListMessages(ctx context.Context, reportID string) ([]*Message, error)
}

// Assistant 模型助手，规则解析无法识别时使用
type Assistant interface {
	Revise(ctx context.Context, r *report.Report, text string) (update.Action, error)
	Draft(ctx context.Context, company string, keywords []string, userInput string) (string, []report.Section, error)
}

// Fetcher 网页正文抓取
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Article, error)
}

// EditResult 一次自然语言修改的结果，Action 为 nil 表示报告未变化
type EditResult struct {
	Report *report.Report
	Action update.Action
	Reply  *Message
}

// ReportUseCase 报告业务逻辑
type ReportUseCase struct {
	repo      ReportRepo
	messages  MessageRepo
	assistant Assistant
	fetcher   Fetcher
	parser    *intent.Parser
	applier   update.Applier
	now       func() time.Time
	log       *log.Helper
}

// NewReportUseCase 创建报告业务逻辑实例，assistant 可以为 nil
func NewReportUseCase(repo ReportRepo, messages MessageRepo, assistant Assistant, fetcher Fetcher, logger log.Logger) *ReportUseCase {
	uc := &ReportUseCase{
		repo:      repo,
		messages:  messages,
		assistant: assistant,
		fetcher:   fetcher,
		parser:    &intent.Parser{},
		now:       time.Now,
		log:       log.NewHelper(logger),
	}
	uc.applier = update.Applier{Now: func() time.Time { return uc.now() }}
	return uc
}

// Create 创建报告，并写入创建时的对话消息
func (uc *ReportUseCase) Create(ctx context.Context, b Brief) (*report.Report, []*Message, error) {
	company := ""
	if b.CompanyID != "" {
		c, ok := catalog.CompanyByID(b.CompanyID)
		if !ok {
			return nil, nil, ErrCompanyNotFound
		}
		company = c.Name
	}
	keywords := MergeKeywords(b.Keywords, b.Additional)

	title, sections := catalog.DefaultReportTitle, catalog.SeedSections()
	if uc.assistant != nil {
		t, s, err := uc.assistant.Draft(ctx, company, keywords, b.UserInput)
		if err != nil {
			uc.log.WithContext(ctx).Warnf("draft report failed, using template: %v", err)
		} else {
			sections = s
			if t != "" {
				title = t
			}
		}
	}

	now := uc.now()
	r := &report.Report{
		ID:        "report-" + uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Sections:  sections,
		Keywords:  keywords,
		UserInput: b.UserInput,
	}
	if err := uc.repo.SaveReport(ctx, r); err != nil {
		return nil, nil, err
	}

	var msgs []*Message
	if b.UserInput != "" {
		msgs = append(msgs, uc.message(MessageUser, r.ID, b.UserInput))
	}
	msgs = append(msgs,
		uc.message(MessageAssistant, r.ID, "리포트가 생성되었습니다! 아래 미리보기를 확인하고 수정할 수 있습니다."),
		uc.message(MessageReportPreview, r.ID, ""),
	)
	if err := uc.messages.AppendMessages(ctx, msgs...); err != nil {
		return nil, nil, err
	}

	uc.log.WithContext(ctx).Infof("report %s created with %d sections", r.ID, len(r.Sections))
	return r, msgs, nil
}

// Get 获取报告
func (uc *ReportUseCase) Get(ctx context.Context, id string) (*report.Report, error) {
	return uc.repo.GetReport(ctx, id)
}

// List 分页列出报告
func (uc *ReportUseCase) List(ctx context.Context, page, pageSize int) ([]*report.Report, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return uc.repo.ListReports(ctx, page, pageSize)
}

// Edit 处理自然语言修改请求：先用规则解析，未识别时交给模型
func (uc *ReportUseCase) Edit(ctx context.Context, id, text string) (*EditResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyRequest
	}
	r, err := uc.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}

	a, rule := uc.parser.Match(text, r)
	if a == nil && uc.assistant != nil {
		a, err = uc.assistant.Revise(ctx, r, text)
		if err != nil {
			// 模型不可用时按未识别处理
			uc.log.WithContext(ctx).Errorf("assistant revise failed: %v", err)
			a = nil
		}
		rule = "assistant"
	}

	res := &EditResult{Report: r, Action: a}
	if a != nil {
		res.Report = uc.applier.Apply(r, a)
		if err := uc.repo.SaveReport(ctx, res.Report); err != nil {
			return nil, err
		}
		uc.log.WithContext(ctx).Infof("report %s: %s via %s", id, a.Kind(), rule)
	}

	res.Reply = uc.message(MessageAssistant, id, replyFor(r, res.Report, a, text))
	if err := uc.messages.AppendMessages(ctx, uc.message(MessageUser, id, text), res.Reply); err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyAction 直接应用一条修改命令，例如界面上的图表类型切换
func (uc *ReportUseCase) ApplyAction(ctx context.Context, id string, a update.Action) (*report.Report, error) {
	r, err := uc.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	out := uc.applier.Apply(r, a)
	if err := uc.repo.SaveReport(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceSections 编辑器保存时整体替换小节
func (uc *ReportUseCase) ReplaceSections(ctx context.Context, id string, sections []report.Section) (*report.Report, error) {
	r, err := uc.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	out := r.Clone()
	out.Sections = sections
	if now := uc.now(); now.After(out.UpdatedAt) {
		out.UpdatedAt = now
	}
	if err := uc.repo.SaveReport(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Chart 返回图表小节的渲染描述
func (uc *ReportUseCase) Chart(ctx context.Context, id, sectionID string) (chart.Descriptor, error) {
	r, err := uc.repo.GetReport(ctx, id)
	if err != nil {
		return chart.Descriptor{}, err
	}
	s, ok := r.SectionByID(sectionID)
	if !ok {
		return chart.Descriptor{}, ErrSectionNotFound
	}
	if s.ChartConfig == nil {
		return chart.Descriptor{}, ErrNotAChart
	}
	return chart.Resolve(*s.ChartConfig), nil
}

// Messages 报告的对话记录
func (uc *ReportUseCase) Messages(ctx context.Context, id string) ([]*Message, error) {
	if _, err := uc.repo.GetReport(ctx, id); err != nil {
		return nil, err
	}
	return uc.messages.ListMessages(ctx, id)
}

// ImportURL 抓取网页正文并作为文本小节追加到报告末尾
func (uc *ReportUseCase) ImportURL(ctx context.Context, id, url string) (*report.Report, error) {
	r, err := uc.repo.GetReport(ctx, id)
	if err != nil {
		return nil, err
	}
	art, err := uc.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(art.Title)
	if title == "" {
		title = url
	}
	a := update.AddSection{Section: report.Section{
		ID:       "section-" + uuid.NewString(),
		Title:    title,
		Content:  truncateRunes(strings.TrimSpace(art.Text), maxImportRunes),
		Type:     report.SectionText,
		Metadata: &report.SectionMetadata{Description: "출처: " + url},
	}}
	out := uc.applier.Apply(r, a)
	if err := uc.repo.SaveReport(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *ReportUseCase) message(t MessageType, reportID, content string) *Message {
	return &Message{
		ID:        fmt.Sprintf("%s-%s", t, uuid.NewString()),
		Type:      t,
		Content:   content,
		ReportID:  reportID,
		Timestamp: uc.now(),
	}
}

// MergeKeywords 合并选中的关键词与逗号分隔的补充关键词，去掉空值与重复项
func MergeKeywords(selected []string, additional string) []string {
	all := append(append([]string{}, selected...), strings.Split(additional, ",")...)
	out := make([]string, 0, len(all))
	seen := make(map[string]struct{}, len(all))
	for _, k := range all {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// replyFor 生成助手的回复文本
func replyFor(before, after *report.Report, a update.Action, text string) string {
	switch v := a.(type) {
	case nil:
		return fmt.Sprintf("리포트 수정 요청을 확인했습니다. \"%s\"에 따라 리포트를 업데이트하겠습니다.", text)
	case update.AddSection:
		return fmt.Sprintf("\"%s\" 섹션을 추가했습니다.", v.Section.Title)
	case update.RemoveSection:
		if s, ok := before.SectionByID(v.SectionID); ok {
			return fmt.Sprintf("\"%s\" 섹션을 삭제했습니다.", s.Title)
		}
		return "섹션을 삭제했습니다."
	case update.UpdateSection:
		if s, ok := after.SectionByID(v.SectionID); ok {
			return fmt.Sprintf("\"%s\" 섹션을 업데이트했습니다.", s.Title)
		}
		return "섹션을 업데이트했습니다."
	case update.ChangeChartType:
		if s, ok := after.SectionByID(v.SectionID); ok {
			return fmt.Sprintf("\"%s\" 섹션의 차트를 %s 타입으로 변경했습니다.", s.Title, v.NewType)
		}
		return "차트 타입을 변경했습니다."
	}
	return "리포트를 업데이트했습니다."
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
