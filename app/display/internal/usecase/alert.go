package usecase

import (
	"context"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sales_agent/app/display/internal/domain"
	"github.com/iWorld-y/sales_agent/app/display/internal/repo"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/alert"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
)

// AlertUseCase 关键词管理与告警检查
type AlertUseCase struct {
	repo     repo.KeywordRepo
	scanner  repo.AlertScanner
	notifier repo.AlertNotifier
	log      *log.Helper
}

// NewAlertUseCase 创建告警业务逻辑实例
func NewAlertUseCase(repo repo.KeywordRepo, scanner repo.AlertScanner, notifier repo.AlertNotifier, logger log.Logger) *AlertUseCase {
	return &AlertUseCase{
		repo:     repo,
		scanner:  scanner,
		notifier: notifier,
		log:      log.NewHelper(logger),
	}
}

// Keywords 已保存的关键词
func (uc *AlertUseCase) Keywords(ctx context.Context) ([]string, error) {
	return uc.repo.ListKeywords(ctx)
}

// SaveKeywords 按行拆分、去空白后整体保存
func (uc *AlertUseCase) SaveKeywords(ctx context.Context, text string) ([]string, error) {
	keywords := model.ParseKeywords(text)
	if err := uc.repo.SaveKeywords(ctx, keywords); err != nil {
		return nil, err
	}
	uc.log.Infof("saved %d alert keywords", len(keywords))
	return keywords, nil
}

// Check 扫描已保存关键词，命中则发送邮件
func (uc *AlertUseCase) Check(ctx context.Context, recipient string) (*domain.AlertResult, error) {
	keywords, err := uc.repo.ListKeywords(ctx)
	if err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, errors.BadRequest("MISSING_KEYWORDS", "Please save keywords to monitor first.")
	}
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return nil, errors.BadRequest("MISSING_RECIPIENT", "Please enter a recipient email.")
	}

	found, err := uc.scanner.Scan(ctx, keywords)
	if err != nil {
		uc.log.Errorf("alert scan: %v", err)
		return nil, err
	}

	articles := make([]domain.AlertArticle, 0, len(found))
	for _, a := range found {
		articles = append(articles, domain.AlertArticle{Keyword: a.Keyword, Title: a.Title, Link: a.Link})
	}
	if len(articles) == 0 {
		return &domain.AlertResult{
			Status:   domain.AlertEmpty,
			Message:  "No new articles found for your keywords.",
			Articles: articles,
		}, nil
	}

	res := uc.notifier.Notify(ctx, recipient, alert.Subject, alert.FormatBody(found))
	status := domain.AlertSent
	if !res.OK {
		status = domain.AlertFailed
	}
	return &domain.AlertResult{Status: status, Message: res.Message, Articles: articles}, nil
}
