package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	dm "github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search"
)

type fakeSearcher struct {
	requests []*search.Request
	resp     *search.Response
	err      error
}

func (f *fakeSearcher) Search(_ context.Context, req *search.Request) (*search.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeChatModel struct {
	calls [][]*schema.Message
	reply string
	err   error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.calls = append(f.calls, input)
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func sampleRequest() dm.ReportRequest {
	return dm.ReportRequest{
		CompanyName:      "Acme",
		CompanyURL:       "acme.com",
		ProductName:      "DataPipe",
		ProductCategory:  "data integration",
		Competitors:      "Globex, Initech",
		ValueProposition: "cuts ETL costs by 30%",
		TargetCustomer:   "CTO",
		DocumentText:     "DataPipe overview sheet",
	}
}

func TestGenerate(t *testing.T) {
	s := &fakeSearcher{resp: &search.Response{Results: []search.Result{
		{Title: "Acme strategy 2025", URL: "https://acme.com/strategy", Content: "Acme moves to the cloud."},
	}}}
	m := &fakeChatModel{reply: "1. Company Strategy:\n- cloud first"}

	out, err := New(m, s).Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "1. Company Strategy:\n- cloud first", out)

	require.Len(t, s.requests, 1)
	req := s.requests[0]
	assert.Equal(t, "Site:acme.com company strategy, leadership, competitors, business model", req.Query)
	assert.Equal(t, "general", req.Topic)
	assert.Equal(t, 2, req.MaxResults)

	require.Len(t, m.calls, 1)
	msgs := m.calls[0]
	require.Len(t, msgs, 2)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "15 years of experience")
	assert.Contains(t, msgs[0].Content, "Do not generate a title")

	user := msgs[1].Content
	assert.Equal(t, schema.User, msgs[1].Role)
	for _, want := range []string{
		"Acme", "acme.com", "DataPipe", "data integration", "Globex, Initech",
		"cuts ETL costs by 30%", "CTO", "DataPipe overview sheet",
		"https://acme.com/strategy", "Acme moves to the cloud.",
		"**Key Public Statements**", "**Strategic Takeaway**", "**Actionable Insight**",
		"**Bottom Line**", "5. Source Links:",
	} {
		assert.Contains(t, user, want)
	}
}

func TestGenerateReturnsModelOutputVerbatim(t *testing.T) {
	s := &fakeSearcher{resp: &search.Response{}}
	m := &fakeChatModel{reply: "  not the five sections at all \n"}

	out, err := New(m, s).Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "  not the five sections at all \n", out)
	assert.Contains(t, m.calls[0][1].Content, "(no results)")
}

func TestGenerateSearchFailure(t *testing.T) {
	boom := errors.New("search quota exceeded")
	s := &fakeSearcher{err: boom}
	m := &fakeChatModel{}

	_, err := New(m, s).Generate(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, m.calls, "no LLM call after a failed search")
}

func TestGenerateModelFailureNoRetry(t *testing.T) {
	boom := errors.New("429 too many requests")
	s := &fakeSearcher{resp: &search.Response{}}
	m := &fakeChatModel{err: boom}

	_, err := New(m, s).Generate(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, m.calls, 1)
	assert.Len(t, s.requests, 1)
}

func TestGenerateLimiterHonoursContext(t *testing.T) {
	s := &fakeSearcher{resp: &search.Response{}}
	m := &fakeChatModel{}
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(m, s, WithLimiter(limiter)).Generate(ctx, sampleRequest())
	assert.Error(t, err)
	assert.Empty(t, m.calls)
}

func TestGenerateEnrichment(t *testing.T) {
	long := strings.Repeat("x", 40)
	s := &fakeSearcher{resp: &search.Response{Results: []search.Result{
		{Title: "thin", URL: "https://acme.com/thin", Content: "short"},
		{Title: "broken", URL: "https://acme.com/broken", Content: "tiny"},
		{Title: "rich", URL: "https://acme.com/rich", Content: long},
	}}}
	m := &fakeChatModel{reply: "ok"}

	var fetched []string
	fetch := func(url string, _ time.Duration) (string, error) {
		fetched = append(fetched, url)
		if strings.HasSuffix(url, "broken") {
			return "", errors.New("timeout")
		}
		return "full page text about the Acme platform roadmap", nil
	}
	cfg := config.EnrichConfig{Enabled: true, MinContent: 20, MaxContent: 30, Timeout: 1}

	_, err := New(m, s, WithEnrichment(cfg, fetch)).Generate(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://acme.com/thin", "https://acme.com/broken"}, fetched)
	user := m.calls[0][1].Content
	assert.Contains(t, user, "full page text about the Acme")
	assert.NotContains(t, user, "roadmap", "fetched text is truncated to max_content")
	assert.Contains(t, user, "tiny")
	assert.Contains(t, user, long)
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, rate.Inf, NewLimiter(config.ConcurrencyConfig{}).Limit())

	l := NewLimiter(config.ConcurrencyConfig{QPS: 3, RPM: 120})
	assert.Equal(t, rate.Limit(2), l.Limit())
	assert.Equal(t, 3, l.Burst())
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "日本", truncateRunes("日本語", 2))
	assert.Equal(t, "abc", truncateRunes("abc", 0))
	assert.Equal(t, "abc", truncateRunes("abc", 5))
}
