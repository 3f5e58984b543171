package biz

import (
	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/wire"
)

// ProviderSet 业务层 Provider 集合
var ProviderSet = wire.NewSet(NewReportUseCase, NewWorkspaceUseCase)

var (
	// ErrReportNotFound 报告不存在
	ErrReportNotFound = errors.NotFound("REPORT_NOT_FOUND", "report not found")
	// ErrSectionNotFound 小节不存在
	ErrSectionNotFound = errors.NotFound("SECTION_NOT_FOUND", "section not found")
	// ErrCompanyNotFound 公司不存在
	ErrCompanyNotFound = errors.NotFound("COMPANY_NOT_FOUND", "company not found")
	// ErrNotAChart 小节不是图表
	ErrNotAChart = errors.BadRequest("NOT_A_CHART", "section has no chart config")
	// ErrEmptyRequest 修改请求为空
	ErrEmptyRequest = errors.BadRequest("EMPTY_REQUEST", "request text is empty")
	// ErrInvalidURL 导入地址不是 http(s)
	ErrInvalidURL = errors.BadRequest("INVALID_URL", "url must be http or https")
	// ErrInvalidDate 日期格式错误
	ErrInvalidDate = errors.BadRequest("INVALID_DATE", "date must be YYYY-MM-DD")
)

// ErrInvalidAction 修改命令不合法
func ErrInvalidAction(err error) *errors.Error {
	return errors.BadRequest("INVALID_ACTION", err.Error())
}
