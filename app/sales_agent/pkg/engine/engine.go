package engine

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/go-shiori/go-readability"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/logger"
	dm "github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search/factory"
)

const (
	reportTopic      = "general"
	reportMaxResults = 2
)

// ChatModel 报告生成所需的最小模型能力
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// FetchFunc 抓取网页正文
type FetchFunc func(url string, timeout time.Duration) (string, error)

// Generator 报告生成器：一次搜索 + 一次 LLM 调用
type Generator struct {
	chatModel ChatModel
	searcher  search.Searcher
	limiter   *rate.Limiter
	enrich    config.EnrichConfig
	fetch     FetchFunc
}

// Option customises a Generator.
type Option func(*Generator)

// WithLimiter paces LLM calls.
func WithLimiter(l *rate.Limiter) Option {
	return func(g *Generator) { g.limiter = l }
}

// WithEnrichment turns on readability fetching of thin snippets.
func WithEnrichment(cfg config.EnrichConfig, fetch FetchFunc) Option {
	return func(g *Generator) {
		g.enrich = cfg
		if fetch != nil {
			g.fetch = fetch
		}
	}
}

// New 使用给定的模型与搜索实现创建生成器
func New(chatModel ChatModel, searcher search.Searcher, opts ...Option) *Generator {
	g := &Generator{
		chatModel: chatModel,
		searcher:  searcher,
		limiter:   rate.NewLimiter(rate.Inf, 1),
		fetch:     fetchAndCleanContent,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewGenerator 根据配置初始化 LLM、限流器与搜索客户端
func NewGenerator(ctx context.Context, cfg *config.Config) (*Generator, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	searcher, err := factory.NewSearcher(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	opts := []Option{WithLimiter(NewLimiter(cfg.Concurrency))}
	if cfg.Enrich.Enabled {
		opts = append(opts, WithEnrichment(cfg.Enrich, nil))
	}
	return New(chatModel, searcher, opts...), nil
}

// NewLimiter builds the LLM pacing limiter. rpm 0 means unlimited.
func NewLimiter(cfg config.ConcurrencyConfig) *rate.Limiter {
	burst := cfg.QPS
	if burst < 1 {
		burst = 1
	}
	if cfg.RPM <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(float64(cfg.RPM)/60.0), burst)
}

// Generate 生成一份报告，返回模型原始输出。搜索或模型失败直接返回错误，不重试。
func (g *Generator) Generate(ctx context.Context, req dm.ReportRequest) (string, error) {
	logger.Log.Infof("开始生成报告: %s (%s)", req.CompanyName, req.CompanyURL)

	resp, err := g.searcher.Search(ctx, &search.Request{
		Query:      SearchQuery(req.CompanyURL),
		Topic:      reportTopic,
		MaxResults: reportMaxResults,
	})
	if err != nil {
		return "", fmt.Errorf("search company %s: %w", req.CompanyURL, err)
	}
	logger.Log.WithField("results", len(resp.Results)).Debugf("搜索完成: %s", req.CompanyURL)

	if g.enrich.Enabled {
		g.enrichResults(resp)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	msg, err := g.chatModel.Generate(ctx, BuildMessages(req, resp.Text()))
	if err != nil {
		return "", fmt.Errorf("generate report for %s: %w", req.CompanyName, err)
	}
	if msg == nil {
		return "", fmt.Errorf("generate report for %s: empty model response", req.CompanyName)
	}

	logger.Log.Infof("报告生成完成: %s, %d 字符", req.CompanyName, utf8.RuneCountInString(msg.Content))
	return msg.Content, nil
}

// enrichResults 对过短的摘要抓取原文替换，失败时保留原摘要
func (g *Generator) enrichResults(resp *search.Response) {
	timeout := time.Duration(g.enrich.Timeout) * time.Second
	for i := range resp.Results {
		item := &resp.Results[i]
		if utf8.RuneCountInString(item.Content) >= g.enrich.MinContent || item.URL == "" {
			continue
		}
		fetched, err := g.fetch(item.URL, timeout)
		if err != nil {
			logger.Log.Warnf("抓取正文失败 [%s]: %v", item.URL, err)
			continue
		}
		fetched = truncateRunes(strings.TrimSpace(fetched), g.enrich.MaxContent)
		if utf8.RuneCountInString(fetched) > utf8.RuneCountInString(item.Content) {
			item.Content = fetched
		}
	}
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func fetchAndCleanContent(url string, timeout time.Duration) (string, error) {
	article, err := readability.FromURL(url, timeout)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}
