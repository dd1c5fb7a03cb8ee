package service

import (
	stderrors "errors"
	"fmt"
	"io"
	nethttp "net/http"
	"strconv"
	"sync"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/uuid"

	"github.com/iWorld-y/sales_agent/app/display/internal/domain"
	"github.com/iWorld-y/sales_agent/app/display/internal/usecase"
)

const (
	// SessionCookie 浏览器会话标识
	SessionCookie = "sales_agent_sid"

	maxUploadBytes = 32 << 20
)

// SalesService 页面与 JSON 接口
type SalesService struct {
	ucReport *usecase.ReportUseCase
	ucAlert  *usecase.AlertUseCase
	log      *log.Helper

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func NewSalesService(ucReport *usecase.ReportUseCase, ucAlert *usecase.AlertUseCase, logger log.Logger) *SalesService {
	return &SalesService{
		ucReport: ucReport,
		ucAlert:  ucAlert,
		log:      log.NewHelper(logger),
		sessions: make(map[string]*domain.Session),
	}
}

// session 返回当前浏览器的会话，不存在时从持久化历史新建
func (s *SalesService) session(ctx http.Context) (*domain.Session, error) {
	if c, err := ctx.Request().Cookie(SessionCookie); err == nil {
		s.mu.Lock()
		sess, ok := s.sessions[c.Value]
		s.mu.Unlock()
		if ok {
			return sess, nil
		}
	}

	id := uuid.NewString()
	sess, err := s.ucReport.OpenSession(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	nethttp.SetCookie(ctx.Response(), &nethttp.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
	})
	s.log.Debugf("new session %s", id)
	return sess, nil
}

func (s *SalesService) ListReports(ctx http.Context) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, s.ucReport.List(sess))
}

func (s *SalesService) GenerateReport(ctx http.Context) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}

	req := ctx.Request()
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil && !stderrors.Is(err, nethttp.ErrNotMultipart) {
		return errors.BadRequest("INVALID_FORM", err.Error())
	}
	form := domain.ReportForm{
		CompanyName:      req.FormValue("company_name"),
		CompanyURL:       req.FormValue("company_url"),
		ProductName:      req.FormValue("product_name"),
		ProductCategory:  req.FormValue("product_category"),
		Competitors:      req.FormValue("competitors"),
		ValueProposition: req.FormValue("value_proposition"),
		TargetCustomer:   req.FormValue("target_customer"),
	}

	upload, err := readUpload(req)
	if err != nil {
		return err
	}

	res, err := s.ucReport.Generate(ctx, sess, form, upload)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, res)
}

func readUpload(req *nethttp.Request) (*domain.Upload, error) {
	f, header, err := req.FormFile("document")
	if stderrors.Is(err, nethttp.ErrMissingFile) || stderrors.Is(err, nethttp.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.BadRequest("INVALID_FORM", err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &domain.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (s *SalesService) CurrentReport(ctx http.Context) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	r, err := s.ucReport.Current(sess)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, r)
}

func (s *SalesService) ViewReport(ctx http.Context) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	i, err := pathIndex(ctx)
	if err != nil {
		return err
	}
	r, err := s.ucReport.View(sess, i)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, r)
}

func (s *SalesService) DeleteReport(ctx http.Context) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	i, err := pathIndex(ctx)
	if err != nil {
		return err
	}
	view, err := s.ucReport.Delete(ctx, sess, i)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, view)
}

func (s *SalesService) DownloadPDF(ctx http.Context) error {
	sess, err := s.session(ctx)
	if err != nil {
		return err
	}
	pdf, err := s.ucReport.CurrentPDF(sess)
	if err != nil {
		return err
	}
	ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Name))
	return ctx.Blob(nethttp.StatusOK, "application/pdf", pdf.Data)
}

type keywordsBody struct {
	Keywords []string `json:"keywords"`
	Text     string   `json:"text,omitempty"`
}

func (s *SalesService) GetKeywords(ctx http.Context) error {
	keywords, err := s.ucAlert.Keywords(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, keywordsBody{Keywords: keywords})
}

// SaveKeywords 接收一行一个关键词的文本
func (s *SalesService) SaveKeywords(ctx http.Context) error {
	var body keywordsBody
	if err := ctx.Bind(&body); err != nil {
		return errors.BadRequest("INVALID_BODY", err.Error())
	}
	keywords, err := s.ucAlert.SaveKeywords(ctx, body.Text)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, map[string]any{
		"keywords": keywords,
		"message":  "Keywords saved! Click 'Check for Alerts' to scan for new content.",
	})
}

type checkBody struct {
	Recipient string `json:"recipient"`
}

func (s *SalesService) CheckAlerts(ctx http.Context) error {
	var body checkBody
	if err := ctx.Bind(&body); err != nil {
		return errors.BadRequest("INVALID_BODY", err.Error())
	}
	res, err := s.ucAlert.Check(ctx, body.Recipient)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, res)
}

func pathIndex(ctx http.Context) (int, error) {
	raw := ctx.Vars().Get("index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.BadRequest("INVALID_INDEX", fmt.Sprintf("report index %q is not a number", raw))
	}
	return i, nil
}
