package saleschannel

import (
	"github.com/smallbiznis/storefront/internal/saleschannel/repository"
	"github.com/smallbiznis/storefront/internal/saleschannel/service"
	"go.uber.org/fx"
)

var Module = fx.Module("saleschannel.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
