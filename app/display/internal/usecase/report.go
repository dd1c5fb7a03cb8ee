package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sales_agent/app/display/internal/domain"
	"github.com/iWorld-y/sales_agent/app/display/internal/repo"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
)

// ReportUseCase 报告生成与历史管理
type ReportUseCase struct {
	repo      repo.ReportRepo
	gen       repo.ReportGenerator
	extractor repo.DocumentExtractor
	renderer  repo.ReportRenderer
	log       *log.Helper
}

// NewReportUseCase 创建报告业务逻辑实例
func NewReportUseCase(
	repo repo.ReportRepo,
	gen repo.ReportGenerator,
	extractor repo.DocumentExtractor,
	renderer repo.ReportRenderer,
	logger log.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		repo:      repo,
		gen:       gen,
		extractor: extractor,
		renderer:  renderer,
		log:       log.NewHelper(logger),
	}
}

// OpenSession 以持久化历史初始化一个会话
func (uc *ReportUseCase) OpenSession(ctx context.Context, id string) (*domain.Session, error) {
	history, err := uc.repo.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewSession(id, history), nil
}

// List 会话内的历史与当前索引
func (uc *ReportUseCase) List(s *domain.Session) domain.ReportView {
	s.Lock()
	defer s.Unlock()
	return s.Snapshot()
}

// Generate 同步生成一份报告：校验表单、解析附件、生成、追加并落盘
func (uc *ReportUseCase) Generate(ctx context.Context, s *domain.Session, form domain.ReportForm, upload *domain.Upload) (*domain.GenerateResult, error) {
	if strings.TrimSpace(form.CompanyName) == "" || strings.TrimSpace(form.CompanyURL) == "" {
		return nil, errors.BadRequest("MISSING_FIELDS", "Please enter a company name and URL")
	}

	var warnings []string
	var documentText string
	if upload != nil {
		text, warning := uc.extractor.Extract(*upload)
		if warning != "" {
			uc.log.Warnf("upload %s: %s", upload.FileName, warning)
			warnings = append(warnings, warning)
		}
		documentText = text
	}

	content, err := uc.gen.Generate(ctx, model.ReportRequest{
		CompanyName:      form.CompanyName,
		CompanyURL:       form.CompanyURL,
		ProductName:      form.ProductName,
		ProductCategory:  form.ProductCategory,
		Competitors:      form.Competitors,
		ValueProposition: form.ValueProposition,
		TargetCustomer:   form.TargetCustomer,
		DocumentText:     documentText,
	})
	if err != nil {
		uc.log.Errorf("generate report for %s: %v", form.CompanyName, err)
		return nil, fmt.Errorf("generate report: %w", err)
	}

	report := domain.Report{CompanyName: form.CompanyName, ReportContent: content}

	s.Lock()
	defer s.Unlock()
	index := s.Append(report)
	if err := uc.save(ctx, s); err != nil {
		return nil, err
	}

	return &domain.GenerateResult{
		Report:   report,
		Index:    index,
		Message:  fmt.Sprintf("Report for %s generated and saved!", form.CompanyName),
		Warnings: warnings,
	}, nil
}

// Current 当前报告
func (uc *ReportUseCase) Current(s *domain.Session) (domain.Report, error) {
	s.Lock()
	defer s.Unlock()
	r, ok := s.Current()
	if !ok {
		return domain.Report{}, errors.NotFound("NO_CURRENT_REPORT", "no report is currently selected")
	}
	return r, nil
}

// View 将第 i 份报告设为当前
func (uc *ReportUseCase) View(s *domain.Session, i int) (domain.Report, error) {
	s.Lock()
	defer s.Unlock()
	if !s.View(i) {
		return domain.Report{}, invalidIndex(i)
	}
	r, _ := s.Current()
	return r, nil
}

// Delete 删除第 i 份报告并落盘
func (uc *ReportUseCase) Delete(ctx context.Context, s *domain.Session, i int) (domain.ReportView, error) {
	s.Lock()
	defer s.Unlock()
	if !s.Delete(i) {
		return domain.ReportView{}, invalidIndex(i)
	}
	if err := uc.save(ctx, s); err != nil {
		return domain.ReportView{}, err
	}
	return s.Snapshot(), nil
}

// CurrentPDF 导出当前报告
func (uc *ReportUseCase) CurrentPDF(s *domain.Session) (*domain.PDFFile, error) {
	r, err := uc.Current(s)
	if err != nil {
		return nil, err
	}
	return uc.renderer.Render(r)
}

// save 覆盖写入完整历史；失败时内存中的修改保留
func (uc *ReportUseCase) save(ctx context.Context, s *domain.Session) error {
	if err := uc.repo.SaveReports(ctx, s.History()); err != nil {
		uc.log.Errorf("save report history: %v", err)
		return fmt.Errorf("save report history: %w", err)
	}
	return nil
}

func invalidIndex(i int) error {
	return errors.BadRequest("INVALID_INDEX", fmt.Sprintf("report index %d is out of range", i))
}
