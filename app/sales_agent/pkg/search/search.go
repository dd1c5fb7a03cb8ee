// Package search defines the provider-neutral web search contract used by
// the report generator and the alert scanner.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Searcher 定义通用的搜索接口
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
}

// Response 通用搜索响应
type Response struct {
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}

// LastDays sets StartDate/EndDate to the n days ending at now.
func (r *Request) LastDays(now time.Time, n int) {
	r.EndDate = now.Format(time.DateOnly)
	r.StartDate = now.AddDate(0, 0, -n).Format(time.DateOnly)
}

// Text renders the results as a numbered plain-text block for prompts.
func (r *Response) Text() string {
	if r == nil || len(r.Results) == 0 {
		return "(no results)"
	}
	var sb strings.Builder
	for i, res := range r.Results {
		fmt.Fprintf(&sb, "%d. %s\nURL: %s\n%s\n", i+1, res.Title, res.URL, strings.TrimSpace(res.Content))
		if i < len(r.Results)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
