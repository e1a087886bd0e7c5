package schema

import (
	"context"
	"time"

	"github.com/WessleyAI/geargraph/engine/domain"
)

// Resolver is the root Query resolver.
type Resolver struct {
	catalog Catalog
	obs     ResolverObserver
}

type gearFilterInput struct {
	BrandName       *string
	ProductType     *string
	Category        *string
	WeightGramsLt   *int32
	WeightGramsGt   *int32
	PriceUSDLt      *float64
	PriceUSDGt      *float64
	CapacityPersons *int32
}

func (in *gearFilterInput) toDomain() *domain.GearFilter {
	if in == nil {
		return nil
	}
	return &domain.GearFilter{
		BrandName:       in.BrandName,
		ProductType:     in.ProductType,
		Category:        in.Category,
		WeightGramsLt:   intFromInt32(in.WeightGramsLt),
		WeightGramsGt:   intFromInt32(in.WeightGramsGt),
		PriceUSDLt:      in.PriceUSDLt,
		PriceUSDGt:      in.PriceUSDGt,
		CapacityPersons: intFromInt32(in.CapacityPersons),
	}
}

type alternativeFilterInput struct {
	MaxWeight       *int32
	MaxPrice        *float64
	CapacityPersons *int32
	ProductType     *string
}

func (in *alternativeFilterInput) toDomain() *domain.AlternativeFilter {
	if in == nil {
		return nil
	}
	return &domain.AlternativeFilter{
		MaxWeight:       intFromInt32(in.MaxWeight),
		MaxPrice:        in.MaxPrice,
		CapacityPersons: intFromInt32(in.CapacityPersons),
		ProductType:     in.ProductType,
	}
}

func (r *Resolver) observe(op string, start time.Time, err error) {
	r.obs.ObserveResolver(op, time.Since(start), err)
}

func (r *Resolver) AllBrands(ctx context.Context) (_ []*brandResolver, err error) {
	defer func(start time.Time) { r.observe("allBrands", start, err) }(time.Now())
	brands, err := r.catalog.AllBrands(ctx)
	if err != nil {
		return nil, err
	}
	return brandResolvers(brands), nil
}

func (r *Resolver) AllCategories(ctx context.Context) (_ []*categoryResolver, err error) {
	defer func(start time.Time) { r.observe("allCategories", start, err) }(time.Now())
	cats, err := r.catalog.AllCategories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*categoryResolver, len(cats))
	for i := range cats {
		out[i] = &categoryResolver{c: cats[i]}
	}
	return out, nil
}

func (r *Resolver) AllGear(ctx context.Context, args struct {
	Filter *gearFilterInput
	Limit  int32
	Offset int32
}) (_ []*gearResolver, err error) {
	defer func(start time.Time) { r.observe("allGear", start, err) }(time.Now())
	items, err := r.catalog.AllGear(ctx, args.Filter.toDomain(),
		int(args.Limit), int(args.Offset))
	if err != nil {
		return nil, err
	}
	return r.gearResolvers(items), nil
}

// Gear treats an empty string argument the same as an absent one.
func (r *Resolver) Gear(ctx context.Context, args struct {
	GearID *string
	Name   *string
}) (_ *gearResolver, err error) {
	defer func(start time.Time) { r.observe("gear", start, err) }(time.Now())
	item, err := r.catalog.Gear(ctx, deref(args.GearID), deref(args.Name))
	if err != nil || item == nil {
		return nil, err
	}
	return &gearResolver{g: *item, catalog: r.catalog}, nil
}

func (r *Resolver) Brand(ctx context.Context, args struct{ Name string }) (_ *brandResolver, err error) {
	defer func(start time.Time) { r.observe("brand", start, err) }(time.Now())
	b, err := r.catalog.Brand(ctx, args.Name)
	if err != nil || b == nil {
		return nil, err
	}
	return &brandResolver{b: *b}, nil
}

func (r *Resolver) AutocompleteGear(ctx context.Context, args struct {
	Query string
	Limit int32
}) (_ []*gearResolver, err error) {
	defer func(start time.Time) { r.observe("autocompleteGear", start, err) }(time.Now())
	items, err := r.catalog.AutocompleteGear(ctx, args.Query, int(args.Limit))
	if err != nil {
		return nil, err
	}
	return r.gearResolvers(items), nil
}

func (r *Resolver) AutocompleteBrands(ctx context.Context, args struct {
	Query string
	Limit int32
}) (_ []*brandResolver, err error) {
	defer func(start time.Time) { r.observe("autocompleteBrands", start, err) }(time.Now())
	brands, err := r.catalog.AutocompleteBrands(ctx, args.Query, int(args.Limit))
	if err != nil {
		return nil, err
	}
	return brandResolvers(brands), nil
}

func (r *Resolver) FindAlternatives(ctx context.Context, args struct {
	GearID string
	Filter *alternativeFilterInput
	Limit  int32
}) (_ []*gearResolver, err error) {
	defer func(start time.Time) { r.observe("findAlternatives", start, err) }(time.Now())
	items, err := r.catalog.FindAlternatives(ctx, args.GearID, args.Filter.toDomain(),
		int(args.Limit))
	if err != nil {
		return nil, err
	}
	return r.gearResolvers(items), nil
}

func (r *Resolver) Stats(ctx context.Context) (_ *statsResolver, err error) {
	defer func(start time.Time) { r.observe("stats", start, err) }(time.Now())
	s, err := r.catalog.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &statsResolver{s: s}, nil
}

func (r *Resolver) gearResolvers(items []domain.GearItem) []*gearResolver {
	out := make([]*gearResolver, len(items))
	for i := range items {
		out[i] = &gearResolver{g: items[i], catalog: r.catalog}
	}
	return out
}

func brandResolvers(brands []domain.Brand) []*brandResolver {
	out := make([]*brandResolver, len(brands))
	for i := range brands {
		out[i] = &brandResolver{b: brands[i]}
	}
	return out
}

func intFromInt32(v *int32) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
