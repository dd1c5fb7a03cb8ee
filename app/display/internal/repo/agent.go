package repo

import (
	"context"

	"github.com/iWorld-y/sales_agent/app/display/internal/domain"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/notify"
)

// ReportGenerator 调用搜索与 LLM 生成报告正文
type ReportGenerator interface {
	Generate(ctx context.Context, req model.ReportRequest) (string, error)
}

// DocumentExtractor 将上传文件转为纯文本
type DocumentExtractor interface {
	Extract(upload domain.Upload) (text, warning string)
}

// ReportRenderer 报告导出
type ReportRenderer interface {
	Render(report domain.Report) (*domain.PDFFile, error)
}

// AlertScanner 按关键词扫描新内容
type AlertScanner interface {
	Scan(ctx context.Context, keywords []string) ([]model.AlertArticle, error)
}

// AlertNotifier 发送告警邮件
type AlertNotifier interface {
	Notify(ctx context.Context, recipient, subject, body string) notify.Result
}
