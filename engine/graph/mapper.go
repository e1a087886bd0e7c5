package graph

import (
	"math"
	"strconv"
	"strings"

	"github.com/WessleyAI/geargraph/engine/domain"
)

// Candidate property keys, consulted in order. Older loads wrote some fields
// under alternate names.
var (
	gearIDKeys    = []string{"gearId", "name"}
	brandNameKeys = []string{"brand", "brandName"}
)

// gearFromProps maps a GearItem node's properties to a domain record.
func gearFromProps(props map[string]any) domain.GearItem {
	return domain.GearItem{
		GearID:      firstString(props, gearIDKeys...),
		Name:        strProp(props, "name"),
		BrandName:   firstString(props, brandNameKeys...),
		ProductType: optString(props, "productType"),
		Category:    optString(props, "category"),
		Description: optString(props, "description"),

		WeightGrams: optInt(props, "weight_grams"),
		PriceUSD:    optFloat(props, "price_usd"),

		VolumeLiters:     optFloat(props, "volumeLiters"),
		CapacityPersons:  optInt(props, "capacityPersons"),
		TempRatingF:      optInt(props, "tempRatingF"),
		FillPower:        optInt(props, "fillPower"),
		RValue:           optFloat(props, "rValue"),
		Lumens:           parseLumens(props["lumens"]),
		FuelType:         optString(props, "fuelType"),
		WaterproofRating: optString(props, "waterproofRating"),

		Materials: stringList(props, "materials"),
		Features:  stringList(props, "features"),

		ProductURL: optString(props, "productUrl"),
		ImageURL:   optString(props, "imageUrl"),
	}
}

// brandFromRow maps a row of brand columns. The name is used as the ID.
func brandFromRow(row map[string]any) domain.Brand {
	name := strProp(row, "name")
	return domain.Brand{
		ID:           name,
		Name:         name,
		Country:      optString(row, "country"),
		Website:      optString(row, "website"),
		YearFounded:  optInt(row, "year_founded"),
		Description:  optString(row, "description"),
		BestKnownFor: optString(row, "best_known_for"),
	}
}

func insightFromRow(row map[string]any) domain.Insight {
	return domain.Insight{
		Summary:   strProp(row, "summary"),
		Content:   strProp(row, "content"),
		Category:  optString(row, "category"),
		SourceURL: optString(row, "source_url"),
	}
}

// categoryFromRow wraps a category's product types in the single "All"
// subcategory. Categories without product types get no subcategories.
func categoryFromRow(row map[string]any) domain.Category {
	var types []domain.ProductType
	if list, ok := row["product_types"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok {
				types = append(types, domain.ProductType{Name: s})
			}
		}
	}
	c := domain.Category{
		Name:          strProp(row, "category"),
		Subcategories: []domain.Subcategory{},
	}
	if len(types) > 0 {
		c.Subcategories = append(c.Subcategories, domain.Subcategory{
			Name:         "All",
			ProductTypes: types,
		})
	}
	return c
}

// parseLumens normalizes light output. Numbers pass through; strings keep
// only their digits ("500 lumens" -> 500). Anything else is unset.
func parseLumens(v any) *int {
	switch t := v.(type) {
	case string:
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, t)
		if digits == "" {
			return nil
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil
		}
		return &n
	default:
		return toInt(v)
	}
}

func strProp(props map[string]any, key string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstString returns the first non-empty string among keys, or "".
func firstString(props map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := strProp(props, k); s != "" {
			return s
		}
	}
	return ""
}

func optString(props map[string]any, key string) *string {
	if s, ok := props[key].(string); ok {
		return &s
	}
	return nil
}

func optInt(props map[string]any, key string) *int {
	return toInt(props[key])
}

func optFloat(props map[string]any, key string) *float64 {
	var f float64
	switch t := props[key].(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int64:
		f = float64(t)
	case int:
		f = float64(t)
	default:
		return nil
	}
	return &f
}

// toInt accepts integer values and whole floats that fit in an int.
func toInt(v any) *int {
	var n int
	switch t := v.(type) {
	case int64:
		n = int(t)
	case int:
		n = t
	case int32:
		n = int(t)
	case float64:
		// MaxInt rounds up to a power of two as a float, hence >=.
		if t != math.Trunc(t) || t >= math.MaxInt || t < math.MinInt {
			return nil
		}
		n = int(t)
	default:
		return nil
	}
	return &n
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}

func stringList(props map[string]any, key string) []string {
	switch t := props[key].(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
