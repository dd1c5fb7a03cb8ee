package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/joho/godotenv"

	"github.com/iWorld-y/sales_agent/app/display/internal/conf"
	"github.com/iWorld-y/sales_agent/app/display/internal/domain"
	"github.com/iWorld-y/sales_agent/app/display/internal/repo"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/alert"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/engine"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/extract"
	agentLogger "github.com/iWorld-y/sales_agent/app/sales_agent/pkg/logger"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/notify"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/render"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search/factory"
)

// NewAgentConfig 将 internal/conf.Agent 转换为 pkg/config.Config，并叠加环境变量
func NewAgentConfig(c *conf.Agent, logger log.Logger) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if c.Llm != nil {
			cfg.LLM = *c.Llm
		}
		if c.Search != nil {
			cfg.Search = *c.Search
		}
		if c.Smtp != nil {
			cfg.SMTP = *c.Smtp
		}
		if c.Log != nil {
			cfg.Log = *c.Log
		}
		if c.Concurrency != nil {
			cfg.Concurrency = *c.Concurrency
		}
		if c.Enrich != nil {
			cfg.Enrich = *c.Enrich
		}
	}

	// .env 文件可选
	_ = godotenv.Load()
	cfg.ApplyEnv()
	cfg.ApplyDefaults()

	if err := agentLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init agent logger: %v", err)
		_ = agentLogger.InitLogger("info", "") // 降级处理
	}
	return cfg
}

// NewReportGenerator 初始化报告生成引擎
func NewReportGenerator(cfg *config.Config) (repo.ReportGenerator, error) {
	return engine.NewGenerator(context.Background(), cfg)
}

// NewAlertScanner 初始化告警扫描器
func NewAlertScanner(cfg *config.Config) (repo.AlertScanner, error) {
	searcher, err := factory.NewSearcher(cfg.Search)
	if err != nil {
		return nil, err
	}
	return alert.NewScanner(searcher), nil
}

// NewAlertNotifier 初始化邮件通知
func NewAlertNotifier(cfg *config.Config) repo.AlertNotifier {
	return notify.New(cfg.SMTP)
}

type documentExtractor struct{}

// NewDocumentExtractor 上传文件解析
func NewDocumentExtractor() repo.DocumentExtractor {
	return documentExtractor{}
}

func (documentExtractor) Extract(u domain.Upload) (string, string) {
	res := extract.Extract(u.Data, u.ContentType, u.FileName)
	return res.Text, res.Warning
}

type pdfRenderer struct{}

// NewReportRenderer PDF 导出
func NewReportRenderer() repo.ReportRenderer {
	return pdfRenderer{}
}

func (pdfRenderer) Render(r domain.Report) (*domain.PDFFile, error) {
	data, err := render.Render(r.ReportContent, r.CompanyName)
	if err != nil {
		return nil, err
	}
	return &domain.PDFFile{Name: render.FileName(r.CompanyName), Data: data}, nil
}
