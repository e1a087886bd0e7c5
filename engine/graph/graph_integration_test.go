//go:build integration

package graph

import (
	"context"
	"os"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/WessleyAI/geargraph/engine/domain"
	"github.com/WessleyAI/geargraph/pkg/repo"
)

const seedCypher = `
CREATE (:OutdoorBrand {name: 'Big Agnes', country: 'USA', yearFounded: 2001})
CREATE (:OutdoorBrand {name: 'Nemo', country: 'USA'})
CREATE (c:Category {name: 'Shelter'})
CREATE (:ProductFamily {productType: 'Tent'})-[:IN_CATEGORY]->(c)
CREATE (t1:GearItem {gearId: 'ba-copper-spur', name: 'Copper Spur UL2', brand: 'Big Agnes',
        productType: 'Tent', category: 'Shelter', weight_grams: 1420, price_usd: 499.95,
        capacityPersons: 2})
CREATE (:GearItem {gearId: 'nemo-hornet', name: 'Hornet Elite', brand: 'Nemo',
        productType: 'Tent', category: 'Shelter', weight_grams: 900, price_usd: 529.95,
        capacityPersons: 2})
CREATE (:GearItem {gearId: 'ba-tiger-wall', name: 'Tiger Wall UL2', brand: 'Big Agnes',
        productType: 'Tent', category: 'Shelter', weight_grams: 1100, price_usd: 449.95,
        capacityPersons: 2})
CREATE (:GearItem {gearId: 'zp-q', name: 'Zpacker Q', brand: 'Nemo', productType: 'Stove'})
CREATE (:GearItem {gearId: 'qamper', name: 'Qamper', brand: 'Nemo', productType: 'Stove'})
CREATE (:GearItem {gearId: 'quail', name: 'Quail', brand: 'Nemo', productType: 'Stove'})
CREATE (t1)-[:HAS_TIP]->(:Insight {summary: 'Seam seal', content: 'Seal the fly before the first trip.'})
`

func testStore(t *testing.T) *Store {
	t.Helper()
	cfg := repo.Config{
		Host: envOr("MEMGRAPH_HOST", "localhost"),
		Port: envOr("MEMGRAPH_PORT", "7687"),
	}
	driver, err := neo4j.NewDriverWithContext(cfg.URI(), neo4j.NoAuth())
	if err != nil {
		t.Fatalf("memgraph connect: %v", err)
	}
	ctx := context.Background()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		t.Fatalf("memgraph verify: %v", err)
	}

	sess := driver.NewSession(ctx, neo4j.SessionConfig{})
	sess.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
	if _, err := sess.Run(ctx, seedCypher, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sess.Close(ctx)

	t.Cleanup(func() {
		sess := driver.NewSession(ctx, neo4j.SessionConfig{})
		sess.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		sess.Close(ctx)
		driver.Close(ctx)
	})
	return New(repo.New(driver))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestIntegration_GearLookup(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	g, err := s.Gear(ctx, "", "copper spur ul2")
	if err != nil {
		t.Fatal(err)
	}
	if g == nil || g.GearID != "ba-copper-spur" {
		t.Fatalf("unexpected gear %+v", g)
	}
	if len(g.Insights) != 1 || g.Insights[0].Summary != "Seam seal" {
		t.Fatalf("unexpected insights %+v", g.Insights)
	}
	if g.WeightGrams == nil || *g.WeightGrams != 1420 {
		t.Fatalf("unexpected weight %v", g.WeightGrams)
	}
}

func TestIntegration_FilteredListing(t *testing.T) {
	s := testStore(t)
	brand := "Big Agnes"
	items, err := s.AllGear(context.Background(), &domain.GearFilter{BrandName: &brand}, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].Name != "Copper Spur UL2" || items[1].Name != "Tiger Wall UL2" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestIntegration_FindAlternatives(t *testing.T) {
	s := testStore(t)
	items, err := s.FindAlternatives(context.Background(), "ba-copper-spur", nil, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].GearID != "nemo-hornet" || items[1].GearID != "ba-tiger-wall" {
		t.Fatalf("expected lightest first without the reference, got %+v", items)
	}
}

func TestIntegration_Stats(t *testing.T) {
	s := testStore(t)
	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.GearCount != 6 || stats.BrandCount != 2 || stats.InsightCount != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestIntegration_Autocomplete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	items, err := s.AutocompleteGear(ctx, "Q", 10)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	if len(names) != 3 || names[0] != "Qamper" || names[1] != "Quail" || names[2] != "Zpacker Q" {
		t.Fatalf("expected prefix matches first, then by name, got %v", names)
	}

	limited, err := s.AutocompleteGear(ctx, "q", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Name != "Qamper" {
		t.Fatalf("unexpected limited result %+v", limited)
	}

	brands, err := s.AutocompleteBrands(ctx, "n", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(brands) != 2 || brands[0].Name != "Nemo" || brands[1].Name != "Big Agnes" {
		t.Fatalf("expected Nemo before Big Agnes, got %+v", brands)
	}
}
