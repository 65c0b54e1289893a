package attribute

import (
	"github.com/smallbiznis/storefront/internal/attribute/repository"
	"github.com/smallbiznis/storefront/internal/attribute/service"
	"go.uber.org/fx"
)

var Module = fx.Module("attribute.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
