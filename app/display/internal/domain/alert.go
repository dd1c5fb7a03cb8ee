package domain

// AlertStatus 告警检查结果级别
type AlertStatus string

const (
	AlertSent   AlertStatus = "success"
	AlertEmpty  AlertStatus = "info"
	AlertFailed AlertStatus = "error"
)

// AlertArticle 命中的文章
type AlertArticle struct {
	Keyword string `json:"keyword"`
	Title   string `json:"title"`
	Link    string `json:"link"`
}

// AlertResult 一次告警检查的结果
type AlertResult struct {
	Status   AlertStatus    `json:"status"`
	Message  string         `json:"message"`
	Articles []AlertArticle `json:"articles"`
}
