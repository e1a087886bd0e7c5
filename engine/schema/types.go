package schema

import (
	"context"
	"math"

	"github.com/WessleyAI/geargraph/engine/domain"
)

type gearResolver struct {
	g       domain.GearItem
	catalog Catalog
}

func (r *gearResolver) GearID() string            { return r.g.GearID }
func (r *gearResolver) Name() string              { return r.g.Name }
func (r *gearResolver) BrandName() string         { return r.g.BrandName }
func (r *gearResolver) ProductType() *string      { return r.g.ProductType }
func (r *gearResolver) Category() *string         { return r.g.Category }
func (r *gearResolver) Description() *string      { return r.g.Description }
func (r *gearResolver) WeightGrams() *int32       { return int32Ptr(r.g.WeightGrams) }
func (r *gearResolver) PriceUSD() *float64        { return r.g.PriceUSD }
func (r *gearResolver) VolumeLiters() *float64    { return r.g.VolumeLiters }
func (r *gearResolver) CapacityPersons() *int32   { return int32Ptr(r.g.CapacityPersons) }
func (r *gearResolver) TempRatingF() *int32       { return int32Ptr(r.g.TempRatingF) }
func (r *gearResolver) FillPower() *int32         { return int32Ptr(r.g.FillPower) }
func (r *gearResolver) RValue() *float64          { return r.g.RValue }
func (r *gearResolver) Lumens() *int32            { return int32Ptr(r.g.Lumens) }
func (r *gearResolver) FuelType() *string         { return r.g.FuelType }
func (r *gearResolver) WaterproofRating() *string { return r.g.WaterproofRating }
func (r *gearResolver) Materials() *[]string      { return listPtr(r.g.Materials) }
func (r *gearResolver) Features() *[]string       { return listPtr(r.g.Features) }
func (r *gearResolver) ProductURL() *string       { return r.g.ProductURL }
func (r *gearResolver) ImageURL() *string         { return r.g.ImageURL }

// Brand is resolved on demand from the item's brand name.
func (r *gearResolver) Brand(ctx context.Context) (*brandResolver, error) {
	if r.g.BrandName == "" {
		return nil, nil
	}
	b, err := r.catalog.Brand(ctx, r.g.BrandName)
	if err != nil || b == nil {
		return nil, err
	}
	return &brandResolver{b: *b}, nil
}

// Insights is null for listings and a (possibly empty) list for lookups.
func (r *gearResolver) Insights() *[]*insightResolver {
	if r.g.Insights == nil {
		return nil
	}
	out := make([]*insightResolver, len(r.g.Insights))
	for i := range r.g.Insights {
		out[i] = &insightResolver{i: r.g.Insights[i]}
	}
	return &out
}

type brandResolver struct{ b domain.Brand }

func (r *brandResolver) ID() string            { return r.b.ID }
func (r *brandResolver) Name() string          { return r.b.Name }
func (r *brandResolver) Country() *string      { return r.b.Country }
func (r *brandResolver) Website() *string      { return r.b.Website }
func (r *brandResolver) YearFounded() *int32   { return int32Ptr(r.b.YearFounded) }
func (r *brandResolver) Description() *string  { return r.b.Description }
func (r *brandResolver) BestKnownFor() *string { return r.b.BestKnownFor }

type categoryResolver struct{ c domain.Category }

func (r *categoryResolver) Name() string { return r.c.Name }

func (r *categoryResolver) Subcategories() []*subcategoryResolver {
	out := make([]*subcategoryResolver, len(r.c.Subcategories))
	for i := range r.c.Subcategories {
		out[i] = &subcategoryResolver{s: r.c.Subcategories[i]}
	}
	return out
}

type subcategoryResolver struct{ s domain.Subcategory }

func (r *subcategoryResolver) Name() string { return r.s.Name }

func (r *subcategoryResolver) ProductTypes() []*productTypeResolver {
	out := make([]*productTypeResolver, len(r.s.ProductTypes))
	for i := range r.s.ProductTypes {
		out[i] = &productTypeResolver{p: r.s.ProductTypes[i]}
	}
	return out
}

type productTypeResolver struct{ p domain.ProductType }

func (r *productTypeResolver) Name() string { return r.p.Name }

type insightResolver struct{ i domain.Insight }

func (r *insightResolver) Summary() string    { return r.i.Summary }
func (r *insightResolver) Content() string    { return r.i.Content }
func (r *insightResolver) Category() *string  { return r.i.Category }
func (r *insightResolver) SourceURL() *string { return r.i.SourceURL }

type statsResolver struct{ s domain.Stats }

func (r *statsResolver) GearCount() int32    { return clampInt32(r.s.GearCount) }
func (r *statsResolver) BrandCount() int32   { return clampInt32(r.s.BrandCount) }
func (r *statsResolver) InsightCount() int32 { return clampInt32(r.s.InsightCount) }

// int32Ptr converts for the GraphQL Int type. Values outside 32 bits are
// dropped rather than wrapped.
func int32Ptr(v *int) *int32 {
	if v == nil || *v > math.MaxInt32 || *v < math.MinInt32 {
		return nil
	}
	n := int32(*v)
	return &n
}

func clampInt32(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

func listPtr(v []string) *[]string {
	if v == nil {
		return nil
	}
	return &v
}
