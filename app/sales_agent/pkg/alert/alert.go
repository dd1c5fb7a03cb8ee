// Package alert scans the web for fresh public content about monitored
// keywords.
package alert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/logger"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/search"
)

const (
	maxResults = 5
	windowDays = 7

	// Subject of the notification mail.
	Subject = "New Sales Alerts Found"
)

// Query 单个关键词的检索语句
func Query(keyword string) string {
	return fmt.Sprintf(`"%s" AND ("press release" OR "job posting") "last 7 days"`, keyword)
}

// Scanner 逐个关键词检索，无状态，不去重
type Scanner struct {
	searcher search.Searcher
	now      func() time.Time
}

// NewScanner creates a Scanner.
func NewScanner(searcher search.Searcher) *Scanner {
	return &Scanner{searcher: searcher, now: time.Now}
}

// Scan issues one search per keyword in order and flattens the hits.
func (s *Scanner) Scan(ctx context.Context, keywords []string) ([]model.AlertArticle, error) {
	articles := make([]model.AlertArticle, 0)
	for _, kw := range keywords {
		req := &search.Request{
			Query:      Query(kw),
			MaxResults: maxResults,
		}
		req.LastDays(s.now(), windowDays)

		resp, err := s.searcher.Search(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scan keyword %q: %w", kw, err)
		}
		logger.Log.Debugf("关键词 [%s] 命中 %d 条", kw, len(resp.Results))

		for _, r := range resp.Results {
			articles = append(articles, model.AlertArticle{
				Keyword: kw,
				Title:   r.Title,
				Link:    r.URL,
			})
		}
	}
	return articles, nil
}

// FormatBody renders the plain-text notification body.
func FormatBody(articles []model.AlertArticle) string {
	var sb strings.Builder
	sb.WriteString("New articles found for your monitored keywords:\n\n")
	for _, a := range articles {
		fmt.Fprintf(&sb, "Keyword: %s\nTitle: %s\nLink: %s\n\n", a.Keyword, a.Title, a.Link)
	}
	return sb.String()
}
