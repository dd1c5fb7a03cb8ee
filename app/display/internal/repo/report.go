package repo

import (
	"context"

	"github.com/iWorld-y/sales_agent/app/display/internal/domain"
)

// ReportRepo 报告历史仓库接口，整体快照读写
type ReportRepo interface {
	// ListReports 读取全部历史报告
	ListReports(ctx context.Context) ([]domain.Report, error)
	// SaveReports 用完整集合覆盖历史
	SaveReports(ctx context.Context, reports []domain.Report) error
}

// KeywordRepo 告警关键词仓库接口
type KeywordRepo interface {
	// ListKeywords 读取已保存的关键词
	ListKeywords(ctx context.Context) ([]string, error)
	// SaveKeywords 整体替换关键词列表
	SaveKeywords(ctx context.Context, keywords []string) error
}
