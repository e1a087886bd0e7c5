package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/WessleyAI/geargraph/engine/domain"
	"github.com/WessleyAI/geargraph/pkg/natsutil"
	natsserver "github.com/nats-io/nats-server/v2/server"
)

func statsServer(t *testing.T, stats *domain.Stats) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stats" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(stats)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func readHistory(t *testing.T, dir string) []Delta {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "data", "stats-history.json"))
	if err != nil {
		t.Fatal(err)
	}
	var h []Delta
	if err := json.Unmarshal(data, &h); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestComputeDelta(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)
	prev := Snapshot{Stats: domain.Stats{GearCount: 10, BrandCount: 4, InsightCount: 7}}
	cur := Snapshot{Timestamp: now, Stats: domain.Stats{GearCount: 13, BrandCount: 4, InsightCount: 5}}

	d := computeDelta(prev, cur, "5m")
	if d.NewGear != 3 || d.NewBrands != 0 || d.NewInsights != -2 {
		t.Fatalf("unexpected delta %+v", d)
	}
	if !d.Timestamp.Equal(now) || d.Period != "5m" {
		t.Fatalf("unexpected stamp %+v", d)
	}
}

func TestAppendHistoryCaps(t *testing.T) {
	var h []Delta
	for i := 0; i < 5; i++ {
		h = appendHistory(h, Delta{NewGear: int64(i)}, 3)
	}
	if len(h) != 3 || h[0].NewGear != 2 || h[2].NewGear != 4 {
		t.Fatalf("unexpected history %+v", h)
	}
}

func TestFetchStats_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"down"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := fetchStats(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error for 500")
	}
}

func TestRun_TwoSnapshots(t *testing.T) {
	stats := &domain.Stats{GearCount: 5, BrandCount: 2, InsightCount: 1}
	srv := statsServer(t, stats)
	dir := t.TempDir()
	opts := options{apiURL: srv.URL, docsDir: dir, period: "5m"}

	if err := run(context.Background(), opts, srv.Client(), testLogger()); err != nil {
		t.Fatal(err)
	}
	stats.GearCount = 8
	if err := run(context.Background(), opts, srv.Client(), testLogger()); err != nil {
		t.Fatal(err)
	}

	h := readHistory(t, dir)
	if len(h) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(h))
	}
	if h[0].NewGear != 5 || h[1].NewGear != 3 || h[1].NewBrands != 0 {
		t.Fatalf("unexpected history %+v", h)
	}

	var latest Snapshot
	data, _ := os.ReadFile(filepath.Join(dir, "data", "stats-latest.json"))
	if err := json.Unmarshal(data, &latest); err != nil {
		t.Fatal(err)
	}
	if latest.Stats.GearCount != 8 || latest.Stats.BrandCount != 2 || latest.Timestamp.IsZero() {
		t.Fatalf("expected the current snapshot in latest, got %+v", latest)
	}
}

func TestRun_PublishesDelta(t *testing.T) {
	ns, err := natsserver.NewServer(&natsserver.Options{Port: -1})
	if err != nil {
		t.Fatal(err)
	}
	ns.Start()
	defer ns.Shutdown()
	if !ns.ReadyForConnections(3 * time.Second) {
		t.Fatal("nats not ready")
	}

	nc, err := natsutil.Connect(ns.ClientURL(), "test-subscriber")
	if err != nil {
		t.Fatal(err)
	}
	defer nc.Close()

	got := make(chan Delta, 1)
	sub, err := natsutil.Subscribe(nc, natsutil.SubjectStatsDelta, func(ctx context.Context, d Delta) {
		got <- d
	})
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Unsubscribe()
	nc.Flush()

	srv := statsServer(t, &domain.Stats{GearCount: 2, BrandCount: 1})
	opts := options{apiURL: srv.URL, docsDir: t.TempDir(), period: "5m", natsURL: ns.ClientURL()}
	if err := run(context.Background(), opts, srv.Client(), testLogger()); err != nil {
		t.Fatal(err)
	}

	select {
	case d := <-got:
		if d.NewGear != 2 || d.NewBrands != 1 {
			t.Fatalf("unexpected delta %+v", d)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for delta")
	}
}
