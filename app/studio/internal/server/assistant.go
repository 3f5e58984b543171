package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_studio/app/studio/internal/biz"
	"github.com/iWorld-y/report_studio/app/studio/internal/conf"
	"github.com/iWorld-y/report_studio/app/studio/pkg/config"
	"github.com/iWorld-y/report_studio/app/studio/pkg/engine"
)

// NewAssistant 初始化模型助手，未配置模型时返回 nil，报告修改只走规则解析
func NewAssistant(c *conf.Assistant, logger log.Logger) (biz.Assistant, func(), error) {
	helper := log.NewHelper(logger)
	cfg := assistantConfig(c)
	if !cfg.LLM.Enabled() {
		helper.Warn("llm not configured, assistant disabled")
		return nil, func() {}, nil
	}

	eng, err := engine.NewEngine(context.Background(), cfg)
	if err != nil {
		helper.Errorf("Failed to init assistant engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up assistant engine")
	}
	return eng, cleanup, nil
}

// assistantConfig 将 internal/conf.Assistant 转换为 pkg/config.Config
func assistantConfig(c *conf.Assistant) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		return cfg
	}
	if c.Llm != nil {
		cfg.LLM = config.LLMConfig{
			BaseURL: c.Llm.BaseUrl,
			APIKey:  c.Llm.ApiKey,
			Model:   c.Llm.Model,
		}
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}
	if c.Concurrency != nil {
		cfg.Concurrency = config.ConcurrencyConfig{
			QPS: int(c.Concurrency.Qps),
			RPM: int(c.Concurrency.Rpm),
		}
	}
	return cfg
}
