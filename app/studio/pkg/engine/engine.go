// Package engine 封装基于大模型的报告助手：规则解析失败时把请求交给模型，
// 以及按关键词起草报告初稿。
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/report_studio/app/studio/pkg/config"
	"github.com/iWorld-y/report_studio/app/studio/pkg/logger"
)

// Generator 模型调用接口，eino 的 ChatModel 满足该接口
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Engine 报告助手
type Engine struct {
	gen        Generator
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
}

// Option 引擎选项
type Option func(*Engine)

// WithRetry 设置限流重试次数与首次退避时间
func WithRetry(maxRetries int, baseDelay time.Duration) Option {
	return func(e *Engine) {
		e.maxRetries = maxRetries
		e.baseDelay = baseDelay
	}
}

// New 使用给定的模型创建引擎
func New(gen Generator, cc config.ConcurrencyConfig, opts ...Option) *Engine {
	limit := rate.Inf
	if cc.RPM > 0 {
		limit = rate.Limit(float64(cc.RPM) / 60.0)
	}
	burst := cc.QPS
	if burst <= 0 {
		burst = 1
	}

	e := &Engine{
		gen:        gen,
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: 3,
		baseDelay:  2 * time.Second,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// NewEngine 按配置初始化 OpenAI 兼容的模型
func NewEngine(ctx context.Context, cfg *config.Config, opts ...Option) (*Engine, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return New(chatModel, cfg.Concurrency, opts...), nil
}

// generateJSON 调用模型并把回复解析到 decode，遇到限流或格式错误时重试
func (e *Engine) generateJSON(ctx context.Context, system, prompt string, decode func([]byte) error) error {
	var lastErr error
	for i := 0; i <= e.maxRetries; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}

		messages := []*schema.Message{
			schema.SystemMessage(system),
			schema.UserMessage(prompt),
		}
		resp, err := e.gen.Generate(ctx, messages)
		if err != nil {
			if !isRateLimited(err) {
				return err
			}
			lastErr = err
			logger.Log.Warnf("模型限流，第 %d 次重试: %v", i+1, err)
			if err := e.backoff(ctx, i); err != nil {
				return err
			}
			continue
		}

		if err := decode([]byte(stripFence(resp.Content))); err != nil {
			lastErr = err
			logger.Log.Warnf("模型输出无法解析，第 %d 次重试: %v", i+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("failed after retries: %w", lastErr)
}

func (e *Engine) backoff(ctx context.Context, attempt int) error {
	if attempt >= e.maxRetries {
		return nil
	}
	t := time.NewTimer(e.baseDelay * time.Duration(1<<attempt))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}

// stripFence 去掉模型输出中的 markdown 代码块标记
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func decodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return errors.New("empty model output")
	}
	return json.Unmarshal(data, v)
}
