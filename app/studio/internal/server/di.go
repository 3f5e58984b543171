package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/report_studio/app/studio/internal/biz"
	"github.com/iWorld-y/report_studio/app/studio/internal/data"
	"github.com/iWorld-y/report_studio/app/studio/internal/service"
)

// ProviderSet 是报告工作台的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewGRPCServer,
	NewAssistant,

	data.ProviderSet,
	biz.ProviderSet,
	service.ProviderSet,
)
