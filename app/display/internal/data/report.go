package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sales_agent/app/display/internal/domain"
	"github.com/iWorld-y/sales_agent/app/display/internal/repo"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
)

type reportRepo struct {
	data *Data
	log  *log.Helper
}

func NewReportRepo(data *Data, logger log.Logger) repo.ReportRepo {
	return &reportRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *reportRepo) ListReports(ctx context.Context) ([]domain.Report, error) {
	reports, err := r.data.store.LoadReports(ctx)
	if err != nil {
		r.log.Errorf("load reports: %v", err)
		return nil, err
	}
	out := make([]domain.Report, 0, len(reports))
	for _, rp := range reports {
		out = append(out, domain.Report{CompanyName: rp.CompanyName, ReportContent: rp.ReportContent})
	}
	return out, nil
}

func (r *reportRepo) SaveReports(ctx context.Context, reports []domain.Report) error {
	in := make([]model.Report, 0, len(reports))
	for _, rp := range reports {
		in = append(in, model.Report{CompanyName: rp.CompanyName, ReportContent: rp.ReportContent})
	}
	return r.data.store.SaveReports(ctx, in)
}

type keywordRepo struct {
	data *Data
	log  *log.Helper
}

func NewKeywordRepo(data *Data, logger log.Logger) repo.KeywordRepo {
	return &keywordRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *keywordRepo) ListKeywords(ctx context.Context) ([]string, error) {
	keywords, err := r.data.store.LoadKeywords(ctx)
	if err != nil {
		r.log.Errorf("load keywords: %v", err)
		return nil, err
	}
	return keywords, nil
}

func (r *keywordRepo) SaveKeywords(ctx context.Context, keywords []string) error {
	return r.data.store.SaveKeywords(ctx, keywords)
}
