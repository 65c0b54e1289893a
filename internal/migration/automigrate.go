package migration

import (
	attrdomain "github.com/smallbiznis/storefront/internal/attribute/domain"
	categorydomain "github.com/smallbiznis/storefront/internal/category/domain"
	collectiondomain "github.com/smallbiznis/storefront/internal/collection/domain"
	customerdomain "github.com/smallbiznis/storefront/internal/customer/domain"
	orderdomain "github.com/smallbiznis/storefront/internal/order/domain"
	pricedomain "github.com/smallbiznis/storefront/internal/price/domain"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	saleschanneldomain "github.com/smallbiznis/storefront/internal/saleschannel/domain"
	tagdomain "github.com/smallbiznis/storefront/internal/tag/domain"
	"gorm.io/gorm"
)

// AutoMigrate builds the schema from the models. Used on the mysql and
// sqlite dialects, where the SQL migrations do not apply; the in-memory
// test databases go through this path too.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&categorydomain.Category{},
		&tagdomain.Tag{},
		&collectiondomain.Collection{},
		&saleschanneldomain.SalesChannel{},
		&attrdomain.AttributeGroup{},
		&attrdomain.Attribute{},
		&attrdomain.AttributeGroupAttribute{},
		&productdomain.Product{},
		&productdomain.Option{},
		&productdomain.OptionValue{},
		&productdomain.Variant{},
		&productdomain.VariantOption{},
		&productdomain.ProductTag{},
		&productdomain.ProductCollection{},
		&productdomain.ProductSalesChannel{},
		&productdomain.ProductAttributeGroup{},
		&productdomain.ProductAttributeValue{},
		&pricedomain.PriceSet{},
		&pricedomain.Price{},
		&customerdomain.Customer{},
		&orderdomain.Order{},
	)
}
