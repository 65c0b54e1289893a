package price

import (
	"github.com/smallbiznis/storefront/internal/price/repository"
	"github.com/smallbiznis/storefront/internal/price/service"
	"go.uber.org/fx"
)

var Module = fx.Module("price.writer",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
