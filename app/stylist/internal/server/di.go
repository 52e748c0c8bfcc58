package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/outfit_radar/app/stylist/internal/repo"
	"github.com/iWorld-y/outfit_radar/app/stylist/internal/service"
	"github.com/iWorld-y/outfit_radar/app/stylist/internal/usecase"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/engine"
)

// ProviderSet 是穿搭服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Engine providers
	NewStylistEngine,
	wire.Bind(new(repo.OutfitAnalyzer), new(*engine.Engine)),
	wire.Bind(new(repo.StoreFinder), new(*engine.Engine)),

	// UseCase providers
	usecase.NewStylistUseCase,

	// Service providers
	service.NewStylistService,
)
