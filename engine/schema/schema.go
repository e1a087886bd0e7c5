// Package schema exposes the gear catalog as a read-only GraphQL API.
package schema

import (
	"context"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/WessleyAI/geargraph/engine/domain"
)

// SDL is the public schema. Query only.
const SDL = `
schema {
	query: Query
}

type Query {
	allBrands: [Brand!]!
	allCategories: [Category!]!
	allGear(filter: GearFilter, limit: Int = 50, offset: Int = 0): [GearItem!]!
	gear(gearId: String, name: String): GearItem
	brand(name: String!): Brand
	autocompleteGear(query: String!, limit: Int = 10): [GearItem!]!
	autocompleteBrands(query: String!, limit: Int = 10): [Brand!]!
	findAlternatives(gearId: String!, filter: AlternativeFilter, limit: Int = 10): [GearItem!]!
	stats: Stats!
}

input GearFilter {
	brandName: String
	productType: String
	category: String
	weightGramsLt: Int
	weightGramsGt: Int
	priceUsdLt: Float
	priceUsdGt: Float
	capacityPersons: Int
}

input AlternativeFilter {
	maxWeight: Int
	maxPrice: Float
	capacityPersons: Int
	productType: String
}

type GearItem {
	gearId: String!
	name: String!
	brandName: String!
	productType: String
	category: String
	description: String
	weightGrams: Int
	priceUsd: Float
	volumeLiters: Float
	capacityPersons: Int
	tempRatingF: Int
	fillPower: Int
	rValue: Float
	lumens: Int
	fuelType: String
	waterproofRating: String
	materials: [String!]
	features: [String!]
	productUrl: String
	imageUrl: String
	brand: Brand
	insights: [Insight!]
}

type Brand {
	id: String!
	name: String!
	country: String
	website: String
	yearFounded: Int
	description: String
	bestKnownFor: String
}

type Category {
	name: String!
	subcategories: [Subcategory!]!
}

type Subcategory {
	name: String!
	productTypes: [ProductType!]!
}

type ProductType {
	name: String!
}

type Insight {
	summary: String!
	content: String!
	category: String
	sourceUrl: String
}

type Stats {
	gearCount: Int!
	brandCount: Int!
	insightCount: Int!
}
`

// Catalog is the read side the resolvers need. *graph.Store implements it.
type Catalog interface {
	AllBrands(ctx context.Context) ([]domain.Brand, error)
	AllCategories(ctx context.Context) ([]domain.Category, error)
	AllGear(ctx context.Context, filter *domain.GearFilter, limit, offset int) ([]domain.GearItem, error)
	Gear(ctx context.Context, gearID, name string) (*domain.GearItem, error)
	Brand(ctx context.Context, name string) (*domain.Brand, error)
	AutocompleteGear(ctx context.Context, query string, limit int) ([]domain.GearItem, error)
	AutocompleteBrands(ctx context.Context, query string, limit int) ([]domain.Brand, error)
	FindAlternatives(ctx context.Context, gearID string, filter *domain.AlternativeFilter, limit int) ([]domain.GearItem, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// ResolverObserver records the outcome of each top-level query field.
type ResolverObserver interface {
	ObserveResolver(operation string, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveResolver(string, time.Duration, error) {}

// New parses SDL against a resolver tree backed by c. obs may be nil.
func New(c Catalog, obs ResolverObserver) (*graphql.Schema, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	return graphql.ParseSchema(SDL, &Resolver{catalog: c, obs: obs})
}
