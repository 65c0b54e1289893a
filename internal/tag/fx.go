package tag

import (
	"github.com/smallbiznis/storefront/internal/tag/repository"
	"github.com/smallbiznis/storefront/internal/tag/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tag.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
