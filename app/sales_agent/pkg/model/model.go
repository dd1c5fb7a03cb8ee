package model

import "strings"

// Report 一份已生成的销售洞察报告
type Report struct {
	CompanyName   string `json:"company_name"`
	ReportContent string `json:"report_content"` // 模型原始输出
}

// ReportRequest 报告生成表单
type ReportRequest struct {
	CompanyName      string `json:"company_name"`
	CompanyURL       string `json:"company_url"`
	ProductName      string `json:"product_name"`
	ProductCategory  string `json:"product_category"`
	Competitors      string `json:"competitors"`
	ValueProposition string `json:"value_proposition"`
	TargetCustomer   string `json:"target_customer"`
	DocumentText     string `json:"-"`
}

// Missing returns the labels of required fields that are blank.
func (r ReportRequest) Missing() []string {
	var missing []string
	if strings.TrimSpace(r.CompanyName) == "" {
		missing = append(missing, "company name")
	}
	if strings.TrimSpace(r.CompanyURL) == "" {
		missing = append(missing, "company URL")
	}
	return missing
}

// AlertArticle 一次告警扫描命中的文章，不落盘
type AlertArticle struct {
	Keyword string `json:"keyword"`
	Title   string `json:"title"`
	Link    string `json:"link"`
}

// NormalizeKeywords trims every entry and drops blank ones. Order and
// duplicates are kept.
func NormalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// ParseKeywords splits one-keyword-per-line text.
func ParseKeywords(text string) []string {
	return NormalizeKeywords(strings.Split(text, "\n"))
}
