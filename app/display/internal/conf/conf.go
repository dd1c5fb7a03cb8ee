package conf

import "github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"

type Bootstrap struct {
	Server *Server
	Data   *Data
	Agent  *Agent
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Storage *config.StorageConfig `json:"storage"`
}

// Agent 报告生成与告警所需的外部服务配置
type Agent struct {
	Llm         *config.LLMConfig         `json:"llm"`
	Search      *config.SearchConfig      `json:"search"`
	Smtp        *config.SMTPConfig        `json:"smtp"`
	Log         *config.LogConfig         `json:"log"`
	Concurrency *config.ConcurrencyConfig `json:"concurrency"`
	Enrich      *config.EnrichConfig      `json:"enrich"`
}
