package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/alert"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/engine"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/extract"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/logger"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/notify"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/render"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search/factory"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/storage"
)

var (
	success = printer(color.FgGreen)
	warning = printer(color.FgYellow)
	failure = printer(color.FgRed)
)

func printer(attr color.Attribute) func(w io.Writer, format string, args ...any) {
	c := color.New(attr)
	return func(w io.Writer, format string, args ...any) {
		c.Fprintf(w, format+"\n", args...)
	}
}

type reportGenerator interface {
	Generate(ctx context.Context, req model.ReportRequest) (string, error)
}

type alertNotifier interface {
	Notify(ctx context.Context, recipient, subject, body string) notify.Result
}

// app 持有各子命令共享的依赖，外部客户端按需初始化
type app struct {
	cfg   *config.Config
	store storage.Store
	out   io.Writer

	newGenerator func(ctx context.Context, cfg *config.Config) (reportGenerator, error)
	newSearcher  func(cfg config.SearchConfig) (search.Searcher, error)
	newNotifier  func(cfg config.SMTPConfig) alertNotifier
}

func newApp(cfg *config.Config, store storage.Store, out io.Writer) *app {
	return &app{
		cfg:   cfg,
		store: store,
		out:   out,
		newGenerator: func(ctx context.Context, cfg *config.Config) (reportGenerator, error) {
			return engine.NewGenerator(ctx, cfg)
		},
		newSearcher: factory.NewSearcher,
		newNotifier: func(cfg config.SMTPConfig) alertNotifier { return notify.New(cfg) },
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "report":
		return a.report(ctx, args)
	case "keywords":
		return a.keywords(ctx, args)
	case "alerts":
		return a.alerts(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) report(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var req model.ReportRequest
	fs.StringVar(&req.CompanyName, "company", "", "company name (required)")
	fs.StringVar(&req.CompanyURL, "url", "", "company URL (required)")
	fs.StringVar(&req.ProductName, "product", "", "product name")
	fs.StringVar(&req.ProductCategory, "category", "", "product category")
	fs.StringVar(&req.Competitors, "competitors", "", "company competitors")
	fs.StringVar(&req.ValueProposition, "value", "", "value proposition")
	fs.StringVar(&req.TargetCustomer, "target", "", "target customer role")
	docPath := fs.String("doc", "", "product overview (pdf, docx or txt)")
	outPath := fs.String("out", "", "write the report PDF to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(req.Missing()) > 0 {
		warning(a.out, "Please enter a company name and URL")
		return nil
	}

	if *docPath != "" {
		data, err := os.ReadFile(*docPath)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		res := extract.Extract(data, mime.TypeByExtension(filepath.Ext(*docPath)), *docPath)
		if res.Warning != "" {
			warning(a.out, "%s", res.Warning)
		}
		req.DocumentText = res.Text
	}

	gen, err := a.newGenerator(ctx, a.cfg)
	if err != nil {
		return err
	}
	content, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	history, err := a.store.LoadReports(ctx)
	if err != nil {
		return err
	}
	report := model.Report{CompanyName: req.CompanyName, ReportContent: content}
	if err := a.store.SaveReports(ctx, append(history, report)); err != nil {
		return err
	}
	success(a.out, "Report for %s generated and saved!", req.CompanyName)
	fmt.Fprintf(a.out, "\n### Report for %s\n\n%s\n", report.CompanyName, report.ReportContent)

	if *outPath != "" {
		pdf, err := render.Render(report.ReportContent, report.CompanyName)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*outPath, pdf, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		success(a.out, "PDF written to %s", *outPath)
	}
	return nil
}

func (a *app) keywords(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("keywords", flag.ContinueOnError)
	fs.SetOutput(a.out)
	set := fs.String("set", "", "comma separated keywords replacing the saved list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *set != "" {
		if err := a.store.SaveKeywords(ctx, strings.Split(*set, ",")); err != nil {
			return err
		}
		success(a.out, "Keywords saved! Run 'alerts' to scan for new content.")
	}

	keywords, err := a.store.LoadKeywords(ctx)
	if err != nil {
		return err
	}
	for _, k := range keywords {
		fmt.Fprintln(a.out, k)
	}
	return nil
}

func (a *app) alerts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alerts", flag.ContinueOnError)
	fs.SetOutput(a.out)
	to := fs.String("to", "", "recipient email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	keywords, err := a.store.LoadKeywords(ctx)
	if err != nil {
		return err
	}
	if len(keywords) == 0 {
		warning(a.out, "Please save keywords to monitor first.")
		return nil
	}
	if strings.TrimSpace(*to) == "" {
		warning(a.out, "Please enter a recipient email.")
		return nil
	}

	searcher, err := a.newSearcher(a.cfg.Search)
	if err != nil {
		return err
	}
	articles, err := alert.NewScanner(searcher).Scan(ctx, keywords)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		fmt.Fprintln(a.out, "No new articles found for your keywords.")
		return nil
	}
	logger.Log.Infof("告警扫描命中 %d 条", len(articles))

	res := a.newNotifier(a.cfg.SMTP).Notify(ctx, *to, alert.Subject, alert.FormatBody(articles))
	if !res.OK {
		return errors.New(res.Message)
	}
	success(a.out, "%s", res.Message)
	return nil
}
