// Package graph resolves gear catalog queries against the graph store.
package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/WessleyAI/geargraph/engine/domain"
	"github.com/WessleyAI/geargraph/pkg/repo"
)

const brandColumns = `RETURN b.name AS name,
       b.country AS country,
       b.website AS website,
       b.yearFounded AS year_founded,
       b.description AS description,
       b.bestKnownFor AS best_known_for`

const (
	cypherAllBrands = `MATCH (b:OutdoorBrand)
` + brandColumns + `
ORDER BY b.name`

	cypherBrandByName = `MATCH (b:OutdoorBrand {name: $name})
` + brandColumns

	cypherAllCategories = `MATCH (c:Category)
OPTIONAL MATCH (pf:ProductFamily)-[:IN_CATEGORY]->(c)
RETURN c.name AS category,
       collect(DISTINCT pf.productType) AS product_types
ORDER BY c.name`

	cypherGearByID = `MATCH (g:GearItem {gearId: $id}) RETURN g`

	cypherGearByName = `MATCH (g:GearItem)
WHERE toLower(g.name) = toLower($name)
RETURN g
LIMIT 1`

	cypherInsights = `MATCH (g:GearItem {gearId: $id})-[:HAS_TIP]->(i:Insight)
RETURN i.summary AS summary,
       i.content AS content,
       i.category AS category,
       i.sourceUrl AS source_url`

	cypherAutocompleteGear = `MATCH (g:GearItem)
WHERE toLower(g.name) CONTAINS toLower($query)
RETURN g
ORDER BY
    CASE WHEN toLower(g.name) STARTS WITH toLower($query) THEN 0 ELSE 1 END,
    g.name
LIMIT $limit`

	cypherAutocompleteBrands = `MATCH (b:OutdoorBrand)
WHERE toLower(b.name) CONTAINS toLower($query)
RETURN b.name AS name,
       b.country AS country,
       b.website AS website
ORDER BY
    CASE WHEN toLower(b.name) STARTS WITH toLower($query) THEN 0 ELSE 1 END,
    b.name
LIMIT $limit`

	cypherReference = `MATCH (g:GearItem {gearId: $id})
RETURN g.productType AS product_type, g.category AS category`

	cypherStats = `OPTIONAL MATCH (g:GearItem) WITH count(g) AS gear
OPTIONAL MATCH (b:OutdoorBrand) WITH gear, count(b) AS brands
OPTIONAL MATCH (i:Insight) WITH gear, brands, count(i) AS insights
RETURN gear, brands, insights`
)

// Store answers catalog queries. It holds no state beyond the querier.
type Store struct {
	q repo.Querier
}

// New creates a Store over q.
func New(q repo.Querier) *Store {
	return &Store{q: q}
}

// AllBrands returns every brand ordered by name.
func (s *Store) AllBrands(ctx context.Context) ([]domain.Brand, error) {
	rows, err := s.q.Execute(ctx, cypherAllBrands, nil)
	if err != nil {
		return nil, fmt.Errorf("all brands: %w", err)
	}
	brands := make([]domain.Brand, 0, len(rows))
	for _, row := range rows {
		brands = append(brands, brandFromRow(row))
	}
	return brands, nil
}

// AllCategories returns the category hierarchy ordered by category name.
func (s *Store) AllCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.q.Execute(ctx, cypherAllCategories, nil)
	if err != nil {
		return nil, fmt.Errorf("all categories: %w", err)
	}
	cats := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, categoryFromRow(row))
	}
	return cats, nil
}

// gearPredicates builds one predicate per supplied filter field.
func gearPredicates(f *domain.GearFilter) Predicates {
	var ps Predicates
	if f == nil {
		return ps
	}
	addIfSet(&ps, "g.brand", OpEq, "brand_name", f.BrandName)
	addIfSet(&ps, "g.productType", OpEq, "product_type", f.ProductType)
	addIfSet(&ps, "g.category", OpEq, "category", f.Category)
	addIfSet(&ps, "g.weight_grams", OpLt, "weight_lt", f.WeightGramsLt)
	addIfSet(&ps, "g.weight_grams", OpGt, "weight_gt", f.WeightGramsGt)
	addIfSet(&ps, "g.price_usd", OpLt, "price_lt", f.PriceUSDLt)
	addIfSet(&ps, "g.price_usd", OpGt, "price_gt", f.PriceUSDGt)
	addIfSet(&ps, "g.capacityPersons", OpEq, "capacity", f.CapacityPersons)
	return ps
}

// listGearCypher renders the filtered listing statement.
func listGearCypher(ps Predicates) string {
	return joinLines(
		"MATCH (g:GearItem)",
		ps.Where(),
		"RETURN g",
		"ORDER BY g.name",
		"SKIP $offset",
		"LIMIT $limit",
	)
}

// AllGear lists gear matching every supplied filter field, ordered by name.
func (s *Store) AllGear(ctx context.Context, filter *domain.GearFilter, limit, offset int) ([]domain.GearItem, error) {
	if err := domain.ValidatePage(limit, offset); err != nil {
		return nil, err
	}
	ps := gearPredicates(filter)
	params := ps.Bind(map[string]any{
		"limit":  int64(limit),
		"offset": int64(offset),
	})
	rows, err := s.q.Execute(ctx, listGearCypher(ps), params)
	if err != nil {
		return nil, fmt.Errorf("all gear: %w", err)
	}
	return gearFromRows(rows, "g"), nil
}

// Gear looks up one item by ID, or by case-insensitive exact name when no ID
// is given. It returns nil without querying when both are empty. A hit has
// its insights attached.
func (s *Store) Gear(ctx context.Context, gearID, name string) (*domain.GearItem, error) {
	var (
		row repo.Row
		ok  bool
		err error
	)
	switch {
	case gearID != "":
		row, ok, err = s.q.ExecuteOne(ctx, cypherGearByID, map[string]any{"id": gearID})
	case name != "":
		row, ok, err = s.q.ExecuteOne(ctx, cypherGearByName, map[string]any{"name": name})
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gear: %w", err)
	}
	if !ok {
		return nil, nil
	}
	props, _ := row["g"].(map[string]any)
	gear := gearFromProps(props)

	insights, err := s.Insights(ctx, gear.GearID)
	if err != nil {
		return nil, err
	}
	gear.Insights = insights
	return &gear, nil
}

// Insights returns the tips linked to gearID in store order.
func (s *Store) Insights(ctx context.Context, gearID string) ([]domain.Insight, error) {
	rows, err := s.q.Execute(ctx, cypherInsights, map[string]any{"id": gearID})
	if err != nil {
		return nil, fmt.Errorf("insights for %s: %w", gearID, err)
	}
	out := make([]domain.Insight, 0, len(rows))
	for _, row := range rows {
		out = append(out, insightFromRow(row))
	}
	return out, nil
}

// Brand returns the brand with exactly this name, or nil.
func (s *Store) Brand(ctx context.Context, name string) (*domain.Brand, error) {
	row, ok, err := s.q.ExecuteOne(ctx, cypherBrandByName, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("brand: %w", err)
	}
	if !ok {
		return nil, nil
	}
	b := brandFromRow(row)
	return &b, nil
}

// AutocompleteGear matches names containing query, prefix matches first.
func (s *Store) AutocompleteGear(ctx context.Context, query string, limit int) ([]domain.GearItem, error) {
	if err := domain.ValidateLimit(limit); err != nil {
		return nil, err
	}
	rows, err := s.q.Execute(ctx, cypherAutocompleteGear, map[string]any{
		"query": query,
		"limit": int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("autocomplete gear: %w", err)
	}
	return gearFromRows(rows, "g"), nil
}

// AutocompleteBrands matches brand names containing query, prefix matches first.
func (s *Store) AutocompleteBrands(ctx context.Context, query string, limit int) ([]domain.Brand, error) {
	if err := domain.ValidateLimit(limit); err != nil {
		return nil, err
	}
	rows, err := s.q.Execute(ctx, cypherAutocompleteBrands, map[string]any{
		"query": query,
		"limit": int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("autocomplete brands: %w", err)
	}
	brands := make([]domain.Brand, 0, len(rows))
	for _, row := range rows {
		brands = append(brands, brandFromRow(row))
	}
	return brands, nil
}

// alternativePredicates builds the candidate conditions. The reference item
// itself is always excluded.
func alternativePredicates(gearID, productType string, f *domain.AlternativeFilter) Predicates {
	var ps Predicates
	ps.Add("g.productType", OpEq, "product_type", productType)
	ps.Add("g.gearId", OpNe, "id", gearID)
	if f != nil {
		addIfSet(&ps, "g.weight_grams", OpLe, "max_weight", f.MaxWeight)
		addIfSet(&ps, "g.price_usd", OpLe, "max_price", f.MaxPrice)
		addIfSet(&ps, "g.capacityPersons", OpEq, "capacity", f.CapacityPersons)
	}
	return ps
}

func alternativesCypher(ps Predicates) string {
	return joinLines(
		"MATCH (g:GearItem)",
		ps.Where(),
		"RETURN g",
		"ORDER BY g.weight_grams ASC",
		"LIMIT $limit",
	)
}

// FindAlternatives returns items of the reference's product type (or the
// filter's override), lightest first. An unknown reference, or one without a
// product type, yields an empty list.
func (s *Store) FindAlternatives(ctx context.Context, gearID string, filter *domain.AlternativeFilter, limit int) ([]domain.GearItem, error) {
	if err := domain.ValidateLimit(limit); err != nil {
		return nil, err
	}
	ref, ok, err := s.q.ExecuteOne(ctx, cypherReference, map[string]any{"id": gearID})
	if err != nil {
		return nil, fmt.Errorf("alternatives reference: %w", err)
	}
	refType := strProp(ref, "product_type")
	if !ok || refType == "" {
		return []domain.GearItem{}, nil
	}

	productType := refType
	if filter != nil && filter.ProductType != nil {
		productType = *filter.ProductType
	}
	ps := alternativePredicates(gearID, productType, filter)
	params := ps.Bind(map[string]any{"limit": int64(limit)})

	rows, err := s.q.Execute(ctx, alternativesCypher(ps), params)
	if err != nil {
		return nil, fmt.Errorf("alternatives: %w", err)
	}
	return gearFromRows(rows, "g"), nil
}

// Stats counts gear, brand and insight nodes. No row means zero of each.
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	row, ok, err := s.q.ExecuteOne(ctx, cypherStats, nil)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	if !ok {
		return domain.Stats{}, nil
	}
	return domain.Stats{
		GearCount:    toInt64(row["gear"]),
		BrandCount:   toInt64(row["brands"]),
		InsightCount: toInt64(row["insights"]),
	}, nil
}

func gearFromRows(rows []repo.Row, key string) []domain.GearItem {
	items := make([]domain.GearItem, 0, len(rows))
	for _, row := range rows {
		props, ok := row[key].(map[string]any)
		if !ok {
			continue
		}
		items = append(items, gearFromProps(props))
	}
	return items
}

// joinLines joins non-empty statement lines.
func joinLines(lines ...string) string {
	kept := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}
