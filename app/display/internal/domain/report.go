package domain

// Report 报告领域对象，按在历史中的位置标识
type Report struct {
	CompanyName   string `json:"company_name"`
	ReportContent string `json:"report_content"`
}

// ReportForm 生成报告的表单字段
type ReportForm struct {
	CompanyName      string
	CompanyURL       string
	ProductName      string
	ProductCategory  string
	Competitors      string
	ValueProposition string
	TargetCustomer   string
}

// Upload 可选的产品资料文件
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// GenerateResult 生成报告的结果，Warnings 为文件解析提示
type GenerateResult struct {
	Report   Report   `json:"report"`
	Index    int      `json:"index"`
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}

// ReportView 会话视角下的报告列表
type ReportView struct {
	History []Report `json:"history"`
	Current int      `json:"current"` // -1 表示无当前报告
}

// PDFFile 下载文件
type PDFFile struct {
	Name string
	Data []byte
}
