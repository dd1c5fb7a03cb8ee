package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/sales_agent/app/display/internal/data"
	"github.com/iWorld-y/sales_agent/app/display/internal/service"
	"github.com/iWorld-y/sales_agent/app/display/internal/usecase"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Agent providers
	NewAgentConfig,
	NewReportGenerator,
	NewAlertScanner,
	NewAlertNotifier,
	NewDocumentExtractor,
	NewReportRenderer,

	// Data providers
	data.NewData,
	data.NewReportRepo,
	data.NewKeywordRepo,

	// UseCase providers
	usecase.NewReportUseCase,
	usecase.NewAlertUseCase,

	// Service providers
	service.NewSalesService,
)
