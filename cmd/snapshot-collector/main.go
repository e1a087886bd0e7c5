// Command snapshot-collector polls the API's /stats endpoint, computes the
// change since the previous run, and writes JSON files for the dashboard.
// With -nats it also publishes the delta.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/WessleyAI/geargraph/engine/domain"
	"github.com/WessleyAI/geargraph/pkg/natsutil"
)

// Snapshot is one observation of the catalog counts.
type Snapshot struct {
	Timestamp time.Time    `json:"timestamp"`
	Stats     domain.Stats `json:"stats"`
}

// Delta represents changes between two consecutive snapshots.
type Delta struct {
	Timestamp   time.Time `json:"timestamp"`
	Period      string    `json:"period"`
	NewGear     int64     `json:"new_gear"`
	NewBrands   int64     `json:"new_brands"`
	NewInsights int64     `json:"new_insights"`
}

const maxHistory = 288

type options struct {
	apiURL  string
	docsDir string
	period  string
	natsURL string
	push    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.apiURL, "api", "http://localhost:8000", "API base URL")
	flag.StringVar(&opts.docsDir, "docs-dir", "docs", "docs directory for output")
	flag.StringVar(&opts.period, "period", "5m", "collection period label")
	flag.StringVar(&opts.natsURL, "nats", "", "NATS URL; publish the delta when set")
	flag.BoolVar(&opts.push, "push", false, "git commit and push after update")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, opts, http.DefaultClient, logger); err != nil {
		logger.Error("snapshot failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, client *http.Client, logger *slog.Logger) error {
	dataDir := filepath.Join(opts.docsDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	latestPath := filepath.Join(dataDir, "stats-latest.json")
	historyPath := filepath.Join(dataDir, "stats-history.json")
	prevPath := filepath.Join(dataDir, ".stats-prev.json")

	stats, err := fetchStats(ctx, client, opts.apiURL)
	if err != nil {
		return err
	}
	current := Snapshot{Timestamp: time.Now().UTC(), Stats: stats}

	// A missing or unreadable previous snapshot counts as zero.
	var prev Snapshot
	if data, err := os.ReadFile(prevPath); err == nil {
		json.Unmarshal(data, &prev)
	}
	delta := computeDelta(prev, current, opts.period)

	if err := writeJSON(latestPath, current); err != nil {
		return fmt.Errorf("write latest: %w", err)
	}

	var history []Delta
	if data, err := os.ReadFile(historyPath); err == nil {
		json.Unmarshal(data, &history)
	}
	if err := writeJSON(historyPath, appendHistory(history, delta, maxHistory)); err != nil {
		return fmt.Errorf("write history: %w", err)
	}

	if err := writeJSON(prevPath, current); err != nil {
		return fmt.Errorf("write previous: %w", err)
	}

	logger.Info("snapshot collected",
		"gear", stats.GearCount,
		"brands", stats.BrandCount,
		"insights", stats.InsightCount,
		"new_gear", delta.NewGear,
		"new_brands", delta.NewBrands,
		"new_insights", delta.NewInsights,
	)

	if opts.natsURL != "" {
		if err := publishDelta(ctx, opts.natsURL, delta); err != nil {
			return err
		}
		logger.Info("delta published", "subject", natsutil.SubjectStatsDelta)
	}

	if opts.push {
		gitCommitPush(opts.docsDir, logger)
	}
	return nil
}

func fetchStats(ctx context.Context, client *http.Client, apiURL string) (domain.Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"/stats", nil)
	if err != nil {
		return domain.Stats{}, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Stats{}, fmt.Errorf("API returned %d: %s", resp.StatusCode, body)
	}
	var stats domain.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return domain.Stats{}, fmt.Errorf("parse stats: %w", err)
	}
	return stats, nil
}

func computeDelta(prev, cur Snapshot, period string) Delta {
	return Delta{
		Timestamp:   cur.Timestamp,
		Period:      period,
		NewGear:     cur.Stats.GearCount - prev.Stats.GearCount,
		NewBrands:   cur.Stats.BrandCount - prev.Stats.BrandCount,
		NewInsights: cur.Stats.InsightCount - prev.Stats.InsightCount,
	}
}

// appendHistory appends d and keeps at most limit of the newest entries.
func appendHistory(history []Delta, d Delta, limit int) []Delta {
	history = append(history, d)
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

func publishDelta(ctx context.Context, url string, d Delta) error {
	nc, err := natsutil.Connect(url, "snapshot-collector")
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Close()
	if err := natsutil.Publish(ctx, nc, natsutil.SubjectStatsDelta, d); err != nil {
		return fmt.Errorf("publish delta: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func gitCommitPush(docsDir string, logger *slog.Logger) {
	cmds := [][]string{
		{"git", "add", filepath.Join(docsDir, "data/")},
		{"git", "commit", "-m", fmt.Sprintf("stats: snapshot %s", time.Now().UTC().Format("2006-01-02T15:04"))},
		{"git", "push"},
	}
	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			logger.Warn("git step failed", "args", args, "err", err)
		}
	}
}
