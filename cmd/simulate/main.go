// simulate fires concurrent booking requests at a running api-server and
// reports how many succeeded, conflicted, or failed. Pointing every worker
// at the same doctor and time range demonstrates that exactly one booking
// wins.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medlyfe/scheduling-service/internal/db"
)

type simConfig struct {
	APIBaseURL  string
	Workers     int
	SameSlot    bool
	PostgresDSN string
}

type metrics struct {
	total     int64
	success   int64
	conflict  int64
	errored   int64
	mu        sync.Mutex
	latencies []time.Duration
}

func (m *metrics) record(latency time.Duration, status int) {
	atomic.AddInt64(&m.total, 1)
	switch {
	case status == http.StatusCreated:
		atomic.AddInt64(&m.success, 1)
	case status == http.StatusConflict:
		atomic.AddInt64(&m.conflict, 1)
	default:
		atomic.AddInt64(&m.errored, 1)
	}

	m.mu.Lock()
	m.latencies = append(m.latencies, latency)
	m.mu.Unlock()
}

func (m *metrics) report() {
	m.mu.Lock()
	defer m.mu.Unlock()

	fmt.Printf("total=%d success=%d conflict=%d error=%d\n",
		m.total, m.success, m.conflict, m.errored)

	if len(m.latencies) == 0 {
		return
	}

	sorted := make([]time.Duration, len(m.latencies))
	copy(sorted, m.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	p50 := sorted[len(sorted)*50/100]
	p95Idx := len(sorted) * 95 / 100
	if p95Idx >= len(sorted) {
		p95Idx = len(sorted) - 1
	}

	fmt.Printf("latency min=%s p50=%s p95=%s max=%s\n",
		sorted[0], p50, sorted[p95Idx], sorted[len(sorted)-1])
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := simConfig{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080"),
		Workers:     getEnvInt("SIM_WORKERS", 20),
		SameSlot:    getEnv("SIM_SAME_SLOT", "true") == "true",
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	doctorID, err := pickOne(ctx, pool, "doctors")
	if err != nil {
		log.Fatalf("pick doctor: %v", err)
	}

	patients, err := pickMany(ctx, pool, "patients", cfg.Workers)
	if err != nil {
		log.Fatalf("pick patients: %v", err)
	}

	date := time.Now().UTC().AddDate(0, 0, 7).Format(time.DateOnly)

	log.Printf("booking against doctor=%s date=%s workers=%d same_slot=%v",
		doctorID, date, cfg.Workers, cfg.SameSlot)

	var m metrics
	var wg sync.WaitGroup
	client := &http.Client{Timeout: 10 * time.Second}

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			startMinute := 9 * 60
			if !cfg.SameSlot {
				startMinute += worker * 30
			}

			body, _ := json.Marshal(map[string]string{
				"doctor_id":  doctorID.String(),
				"date":       date,
				"start_time": fmt.Sprintf("%02d:%02d", startMinute/60, startMinute%60),
				"end_time":   fmt.Sprintf("%02d:%02d", (startMinute+30)/60, (startMinute+30)%60),
				"reason":     "load simulation",
			})

			req, err := http.NewRequest(http.MethodPost, cfg.APIBaseURL+"/appointments", bytes.NewReader(body))
			if err != nil {
				log.Printf("worker %d: build request: %v", worker, err)
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Actor-ID", patients[worker%len(patients)].String())
			req.Header.Set("X-Actor-Role", "patient")

			start := time.Now()
			resp, err := client.Do(req)
			latency := time.Since(start)
			if err != nil {
				log.Printf("worker %d: request failed: %v", worker, err)
				m.record(latency, 0)
				return
			}
			resp.Body.Close()
			m.record(latency, resp.StatusCode)
		}(i)
	}

	wg.Wait()
	m.report()

	if cfg.SameSlot && m.success != 1 {
		log.Printf("WARNING: expected exactly 1 success for a contended slot, got %d", m.success)
	}
}

func pickOne(ctx context.Context, pool *pgxpool.Pool, table string) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `SELECT id FROM `+table+` ORDER BY random() LIMIT 1`).Scan(&id)
	return id, err
}

func pickMany(ctx context.Context, pool *pgxpool.Pool, table string, limit int) ([]uuid.UUID, error) {
	rows, err := pool.Query(ctx, `SELECT id FROM `+table+` ORDER BY random() LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no rows in %s, run cmd/seed first", table)
	}
	return ids, rows.Err()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
