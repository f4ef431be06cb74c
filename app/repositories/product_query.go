package repositories

import (
	"strings"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortNameAsc   ProductSort = "name_asc"
	SortNameDesc  ProductSort = "name_desc"
)

func (s ProductSort) Valid() bool {
	switch s {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// ProductFilter holds the optional catalog predicates. Zero values mean "no filter".
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     ProductSort

	SellerID        *uint
	IncludeInactive bool
}

// Scopes returns the predicate scopes for f. The same set drives COUNT and the page fetch.
func (f ProductFilter) Scopes() []func(*gorm.DB) *gorm.DB {
	scopes := []func(*gorm.DB) *gorm.DB{}
	if !f.IncludeInactive {
		scopes = append(scopes, ActiveProducts)
	}
	if f.SellerID != nil {
		scopes = append(scopes, ProductsBySeller(*f.SellerID))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		scopes = append(scopes, ProductsMatching(s))
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		scopes = append(scopes, ProductsInCategory(c))
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		scopes = append(scopes, ProductsPriceBetween(f.MinPrice, f.MaxPrice))
	}
	return scopes
}

func ActiveProducts(db *gorm.DB) *gorm.DB {
	return db.Where("products.is_active = ?", true)
}

func ProductsBySeller(sellerID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("products.seller_id = ?", sellerID)
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern turns a raw search term into a LIKE pattern with '!' as the escape
// character, so user supplied wildcards match literally.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

func ProductsMatching(term string) func(*gorm.DB) *gorm.DB {
	pattern := likePattern(term)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"(LOWER(products.title) LIKE ? ESCAPE '!' OR LOWER(products.description) LIKE ? ESCAPE '!')",
			pattern, pattern,
		)
	}
}

func ProductsInCategory(name string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"products.id IN (SELECT pc.product_id FROM product_categories pc "+
				"JOIN categories c ON c.id = pc.category_id WHERE c.name = ?)",
			name,
		)
	}
}

func ProductsPriceBetween(min, max *decimal.Decimal) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if min != nil {
			db = db.Where("products.price >= ?", *min)
		}
		if max != nil {
			db = db.Where("products.price <= ?", *max)
		}
		return db
	}
}

// SortProducts orders by the requested key with products.id as the tie-breaker.
func SortProducts(sort ProductSort) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch sort {
		case SortPriceAsc:
			db = db.Order("products.price ASC")
		case SortPriceDesc:
			db = db.Order("products.price DESC")
		case SortNameAsc:
			db = db.Order("products.title ASC")
		case SortNameDesc:
			db = db.Order("products.title DESC")
		default:
			db = db.Order("products.created_at DESC")
		}
		return db.Order("products.id ASC")
	}
}

func Paginate(p pagination.Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}
