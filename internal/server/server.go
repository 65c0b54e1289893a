package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/storefront/internal/attribute"
	attrdomain "github.com/smallbiznis/storefront/internal/attribute/domain"
	"github.com/smallbiznis/storefront/internal/category"
	categorydomain "github.com/smallbiznis/storefront/internal/category/domain"
	"github.com/smallbiznis/storefront/internal/collection"
	collectiondomain "github.com/smallbiznis/storefront/internal/collection/domain"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/customer"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	obsmiddleware "github.com/smallbiznis/storefront/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/order"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	"github.com/smallbiznis/storefront/internal/price"
	"github.com/smallbiznis/storefront/internal/product"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/internal/saleschannel"
	saleschanneldomain "github.com/smallbiznis/storefront/internal/saleschannel/domain"
	"github.com/smallbiznis/storefront/internal/tag"
	tagdomain "github.com/smallbiznis/storefront/internal/tag/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerMetrics),
	fx.Provide(registerGin),
	attribute.Module,
	category.Module,
	collection.Module,
	customer.Module,
	order.Module,
	price.Module,
	product.Module,
	saleschannel.Module,
	tag.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(log, obsmiddleware.MiddlewareConfig{
		Debug:           !cfg.IsProduction(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerMetrics() (*obsmetrics.HTTPMetrics, error) {
	return obsmetrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
}

func registerGin(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	productSvc      productdomain.Service
	categorySvc     categorydomain.Service
	collectionSvc   collectiondomain.Service
	tagSvc          tagdomain.Service
	salesChannelSvc saleschanneldomain.Service
	attributeSvc    attrdomain.Service
	customerSvc     customerdomain.Service
	orderSvc        orderdomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	ProductSvc      productdomain.Service
	CategorySvc     categorydomain.Service
	CollectionSvc   collectiondomain.Service
	TagSvc          tagdomain.Service
	SalesChannelSvc saleschanneldomain.Service
	AttributeSvc    attrdomain.Service
	CustomerSvc     customerdomain.Service
	OrderSvc        orderdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		productSvc:      p.ProductSvc,
		categorySvc:     p.CategorySvc,
		collectionSvc:   p.CollectionSvc,
		tagSvc:          p.TagSvc,
		salesChannelSvc: p.SalesChannelSvc,
		attributeSvc:    p.AttributeSvc,
		customerSvc:     p.CustomerSvc,
		orderSvc:        p.OrderSvc,
	}

	svc.registerAdminRoutes()

	return svc
}

func (s *Server) registerAdminRoutes() {
	v1 := s.engine.Group("/api/v1")

	products := v1.Group("/products")
	products.POST("", s.CreateProduct)
	products.POST("/batch", s.CreateProductBatch)
	products.PUT("/batch", s.UpdateProductBatch)
	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProduct)
	products.PUT("/:id", s.UpdateProduct)
	products.DELETE("", s.DeleteProducts)

	categories := v1.Group("/categories")
	categories.POST("", s.CreateCategory)
	categories.GET("", s.ListCategories)
	categories.GET("/:id", s.GetCategory)
	categories.PUT("/:id", s.UpdateCategory)
	categories.DELETE("", s.DeleteCategories)

	collections := v1.Group("/collections")
	collections.POST("", s.CreateCollection)
	collections.GET("", s.ListCollections)
	collections.GET("/:id", s.GetCollection)
	collections.PUT("/:id", s.UpdateCollection)
	collections.DELETE("", s.DeleteCollections)
	collections.POST("/:id/products", s.LinkCollectionProducts)
	collections.DELETE("/:id/products", s.UnlinkCollectionProducts)

	tags := v1.Group("/tags")
	tags.POST("", s.CreateTag)
	tags.GET("", s.ListTags)
	tags.GET("/:id", s.GetTag)
	tags.PUT("/:id", s.UpdateTag)
	tags.DELETE("", s.DeleteTags)

	channels := v1.Group("/sales-channels")
	channels.POST("", s.CreateSalesChannel)
	channels.GET("", s.ListSalesChannels)
	channels.GET("/:id", s.GetSalesChannel)
	channels.PUT("/:id", s.UpdateSalesChannel)
	channels.DELETE("/:id", s.DeleteSalesChannel)

	groups := v1.Group("/attribute-groups")
	groups.POST("", s.CreateAttributeGroup)
	groups.GET("", s.ListAttributeGroups)
	groups.GET("/:id", s.GetAttributeGroup)
	groups.DELETE("/:id", s.DeleteAttributeGroup)
	groups.POST("/:id/attributes", s.AssignAttributes)
	groups.DELETE("/:id/attributes", s.UnassignAttributes)

	attributes := v1.Group("/attributes")
	attributes.POST("", s.CreateAttribute)
	attributes.GET("", s.ListAttributes)

	customers := v1.Group("/customers")
	customers.POST("", s.CreateCustomer)
	customers.GET("", s.ListCustomers)
	customers.GET("/:id", s.GetCustomer)
	customers.PUT("/:id", s.UpdateCustomer)
	customers.DELETE("", s.DeleteCustomers)

	orders := v1.Group("/orders")
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrder)
	orders.PUT("/:id/status", s.UpdateOrderStatus)
}
