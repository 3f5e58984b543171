package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/report_studio/app/studio/pkg/config"
	"github.com/iWorld-y/report_studio/app/studio/pkg/engine"
	"github.com/iWorld-y/report_studio/app/studio/pkg/intent"
	"github.com/iWorld-y/report_studio/app/studio/pkg/logger"
	"github.com/iWorld-y/report_studio/app/studio/pkg/report"
	"github.com/iWorld-y/report_studio/app/studio/pkg/update"
)

// reviser 规则未命中时用来理解修改请求的模型
type reviser interface {
	Revise(ctx context.Context, r *report.Report, text string) (update.Action, error)
}

// reviserFactory 按配置文件创建 reviser
type reviserFactory func(ctx context.Context, configPath string) (reviser, error)

type options struct {
	file       string
	configPath string
	output     string
	assist     bool
	verbose    bool

	newReviser reviserFactory
}

// newRootCmd 创建 reportctl 命令，factory 为空时使用模型引擎
func newRootCmd(factory reviserFactory) *cobra.Command {
	if factory == nil {
		factory = engineReviser
	}
	o := &options{newReviser: factory}

	root := &cobra.Command{
		Use:   "reportctl",
		Short: "Edit AI report documents from the command line",
		Long: `reportctl reads a report document (JSON or YAML) and applies natural
language edit requests to it, the same way the studio server does.

Examples:
  reportctl init -f report.json
  reportctl parse -f report.json "시장 동향 삭제해줘"
  reportctl edit -f report.yaml "원형 그래프로 바꿔줘"
  reportctl chart -f report.json section-3
  reportctl edit -f report.json --assist --config configs/reportctl.yaml "요약을 더 짧게"`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.verbose {
				logger.Log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVarP(&o.file, "file", "f", "report.json", "report document path (.json, .yaml or .yml)")
	root.PersistentFlags().StringVar(&o.configPath, "config", "app/studio/configs/reportctl.yaml", "assistant config path, used with --assist")
	root.PersistentFlags().StringVarP(&o.output, "output", "o", "json", "output format: json | yaml")
	root.PersistentFlags().BoolVar(&o.assist, "assist", false, "ask the model when no rule matches")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newInitCmd(o),
		newParseCmd(o),
		newEditCmd(o),
		newChartCmd(o),
	)
	return root
}

func engineReviser(ctx context.Context, configPath string) (reviser, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if !cfg.LLM.Enabled() {
		return nil, fmt.Errorf("llm is not configured in %s", configPath)
	}
	eng, err := engine.NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return eng, nil
}

// resolve 先走规则解析，未命中且开启 --assist 时询问模型
func (o *options) resolve(ctx context.Context, r *report.Report, text string) (update.Action, error) {
	if a, rule := (&intent.Parser{}).Match(text, r); a != nil {
		logger.Log.Debugf("matched rule %s", rule)
		return a, nil
	}
	if !o.assist {
		return nil, nil
	}

	rv, err := o.newReviser(ctx, o.configPath)
	if err != nil {
		return nil, fmt.Errorf("init assistant: %w", err)
	}
	a, err := rv.Revise(ctx, r, text)
	if err != nil {
		return nil, fmt.Errorf("assistant: %w", err)
	}
	return a, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func loadReport(path string) (*report.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r report.Report
	if isYAML(path) {
		err = yaml.Unmarshal(data, &r)
	} else {
		err = json.Unmarshal(data, &r)
	}
	if err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &r, nil
}

func saveReport(path string, r *report.Report) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (o *options) print(w io.Writer, v any) error {
	switch o.output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format: %s", o.output)
	}
}
