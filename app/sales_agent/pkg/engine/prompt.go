package engine

import (
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
)

const systemPrompt = `You are a sales assistant with 15 years of experience. Your task is to analyze a prospective client and generate a one-page sales report. The report should be structured, concise, and actionable for a sales representative.

IMPORTANT: Do not generate a title, header, or anything like 'Prepared for...' or 'One-Page Sales Report'.`

// 参数顺序: 搜索结果, 文档, 公司名, URL, 产品, 品类, 价值主张, 竞品, 目标角色,
// 然后是各小节里重复引用的 产品, 品类, 竞品, 产品, 品类, 价值主张
const userPromptTpl = `Company Info from web search:
%s

Product Overview from Uploaded Document:
%s

Company Name: %s
Company URL: %s
Product Name: %s
Product Category: %s
Value Proposition: %s
Competitors: %s
Target Customer Role: %s

Generate a one-page sales report with the following sections. Ensure the information is relevant to selling %s to the target company.
1. Company Strategy:
   - A summary of the company's public strategy and goals, specifically in the %s space.
   - Mention any key public statements, press releases, or job postings that hint at their technology stack or strategic direction.
   **Key Public Statements** (as a callout box for specific quotes)
2. Competitor Analysis:
   - Any public mentions of the provided competitors (%s) and how they relate to the target company.
   - Explain where our %s might have an advantage based on the company's strategy.
   **Strategic Takeaway** (as a callout box for the final summary of this section)
3. Leadership Insights:
   - Identify key leaders and decision-makers relevant to a sale in the %s space.
   - Mention their recent public activity, such as quotes in articles or press releases.
   **Actionable Insight** (as a callout box for a list of insights)
4. Value Proposition Alignment:
   - A brief summary explaining how our value proposition ("%s") aligns with the target company's publicly stated strategy and goals.
   **Bottom Line** (as a callout box for the final summary)
5. Source Links:
   - Provide a numbered list of all article links and sources used to generate the report.

Ensure the final output is formatted in clear sections with bullet points.`

// SearchQuery is the single site-restricted query issued per report.
func SearchQuery(companyURL string) string {
	return fmt.Sprintf("Site:%s company strategy, leadership, competitors, business model", companyURL)
}

// BuildMessages assembles the system and user messages for one report.
func BuildMessages(req model.ReportRequest, searchResults string) []*schema.Message {
	user := fmt.Sprintf(userPromptTpl,
		searchResults,
		req.DocumentText,
		req.CompanyName,
		req.CompanyURL,
		req.ProductName,
		req.ProductCategory,
		req.ValueProposition,
		req.Competitors,
		req.TargetCustomer,
		req.ProductName,
		req.ProductCategory,
		req.Competitors,
		req.ProductName,
		req.ProductCategory,
		req.ValueProposition,
	)
	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(user),
	}
}
