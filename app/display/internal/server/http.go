package server

import (
	"embed"
	nethttp "net/http"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/sales_agent/app/display/internal/conf"
	"github.com/iWorld-y/sales_agent/app/display/internal/service"
)

//go:embed assets/*
var assets embed.FS

// 报告生成包含一次搜索与一次 LLM 调用，默认 1s 超时不够
const defaultTimeout = 2 * time.Minute

func NewHTTPServer(c *conf.Server, s *service.SalesService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
		http.Timeout(defaultTimeout),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)

	r := srv.Route("/api")
	r.GET("/reports", s.ListReports)
	r.POST("/reports", s.GenerateReport)
	r.GET("/reports/current", s.CurrentReport)
	r.GET("/reports/current/pdf", s.DownloadPDF)
	r.POST("/reports/{index}/view", s.ViewReport)
	r.DELETE("/reports/{index}", s.DeleteReport)
	r.GET("/alerts/keywords", s.GetKeywords)
	r.PUT("/alerts/keywords", s.SaveKeywords)
	r.POST("/alerts/check", s.CheckAlerts)

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path != "/" {
			nethttp.NotFound(w, r)
			return
		}
		content, _ := assets.ReadFile("assets/index.html")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(content)
	})

	return srv
}
