package update

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
)

// KindNone 模型表示无需修改时返回的类型
const KindNone Kind = "none"

var (
	// ErrUnknownAction 未知的命令类型
	ErrUnknownAction = errors.New("unknown report update action")
	// ErrInvalidAction 命令缺少必填字段
	ErrInvalidAction = errors.New("invalid report update action")
)

// Envelope 命令的 JSON 形式，字段按 type 选用
type Envelope struct {
	Type        Kind                `json:"type"`
	Section     *report.Section     `json:"section,omitempty"`
	Position    *int                `json:"position,omitempty"`
	SectionID   string              `json:"sectionId,omitempty"`
	Updates     *SectionPatch       `json:"updates,omitempty"`
	NewType     report.ChartType    `json:"newType,omitempty"`
	ChartConfig *report.ChartConfig `json:"chartConfig,omitempty"`
	SectionIDs  []string            `json:"sectionIds,omitempty"`
}

// Encode 把命令转换为 JSON 形式
func Encode(a Action) Envelope {
	switch v := a.(type) {
	case AddSection:
		s := v.Section
		return Envelope{Type: v.Kind(), Section: &s, Position: v.Position}
	case RemoveSection:
		return Envelope{Type: v.Kind(), SectionID: v.SectionID}
	case UpdateSection:
		p := v.Patch
		return Envelope{Type: v.Kind(), SectionID: v.SectionID, Updates: &p}
	case ChangeChartType:
		return Envelope{Type: v.Kind(), SectionID: v.SectionID, NewType: v.NewType}
	case UpdateChartData:
		cfg := v.ChartConfig
		return Envelope{Type: v.Kind(), SectionID: v.SectionID, ChartConfig: &cfg}
	case ReorderSections:
		return Envelope{Type: v.Kind(), SectionIDs: v.SectionIDs}
	}
	return Envelope{Type: KindNone}
}

// Action 把 JSON 形式还原为命令，type 为 none 时返回 nil
func (e Envelope) Action() (Action, error) {
	switch e.Type {
	case KindNone:
		return nil, nil
	case KindAddSection:
		if e.Section == nil {
			return nil, fmt.Errorf("%w: add_section requires section", ErrInvalidAction)
		}
		return AddSection{Section: *e.Section, Position: e.Position}, nil
	case KindRemoveSection:
		if e.SectionID == "" {
			return nil, fmt.Errorf("%w: remove_section requires sectionId", ErrInvalidAction)
		}
		return RemoveSection{SectionID: e.SectionID}, nil
	case KindUpdateSection:
		if e.SectionID == "" || e.Updates == nil {
			return nil, fmt.Errorf("%w: update_section requires sectionId and updates", ErrInvalidAction)
		}
		return UpdateSection{SectionID: e.SectionID, Patch: *e.Updates}, nil
	case KindChangeChartType:
		if e.SectionID == "" || !e.NewType.Valid() {
			return nil, fmt.Errorf("%w: change_chart_type requires sectionId and a known newType", ErrInvalidAction)
		}
		return ChangeChartType{SectionID: e.SectionID, NewType: e.NewType}, nil
	case KindUpdateChartData:
		if e.SectionID == "" || e.ChartConfig == nil {
			return nil, fmt.Errorf("%w: update_chart_data requires sectionId and chartConfig", ErrInvalidAction)
		}
		return UpdateChartData{SectionID: e.SectionID, ChartConfig: *e.ChartConfig}, nil
	case KindReorderSections:
		if len(e.SectionIDs) == 0 {
			return nil, fmt.Errorf("%w: reorder_sections requires sectionIds", ErrInvalidAction)
		}
		return ReorderSections{SectionIDs: e.SectionIDs}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, e.Type)
}

// Decode 解析 JSON 命令
func Decode(data []byte) (Action, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	return e.Action()
}
