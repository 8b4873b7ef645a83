package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	ntcrypt "github.com/MrEthical07/ntcrypt"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type account struct {
	id       string
	password string
	encoded  string
}

func main() {
	var (
		accounts    = flag.Int("accounts", 10000, "number of accounts to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase (hash + verify)")
		wrongRatio  = flag.Float64("wrong-ratio", 0.1, "fraction of verify calls made with a wrong password")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "ntlt", "limiter key prefix")
	)
	flag.Parse()

	if *accounts <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "accounts, concurrency, and ops must be > 0")
		os.Exit(2)
	}
	if *wrongRatio < 0 || *wrongRatio > 1 {
		fmt.Fprintln(os.Stderr, "wrong-ratio must be within [0,1]")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	cfg := ntcrypt.DefaultConfig()
	cfg.Metrics.EnableLatencyHistograms = true
	cfg.Limiter.Enabled = true
	cfg.Limiter.RedisPrefix = *prefix
	cfg.Limiter.MaxAttempts = 1 << 20

	hasher, err := ntcrypt.New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build hasher: %v\n", err)
		os.Exit(1)
	}
	defer hasher.Close()

	states := make([]account, *accounts)
	fmt.Printf("seeding %d accounts...\n", *accounts)
	startSeed := time.Now()
	for i := 0; i < *accounts; i++ {
		pw := passwordFor(i)
		encoded, err := hasher.Hash(pw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash failed: %v\n", err)
			os.Exit(1)
		}
		states[i] = account{id: fmt.Sprintf("user-%d", i), password: pw, encoded: encoded}
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	hashStats := runHashPhase(hasher, states, *ops, *concurrency)
	verifyStats := runVerifyPhase(ctx, hasher, states, *ops, *concurrency, *wrongRatio)

	fmt.Println("---- results ----")
	printStats("hash", hashStats)
	printStats("verify", verifyStats)

	snap := hasher.MetricsSnapshot()
	fmt.Printf("verify_match=%d verify_mismatch=%d rate_limited=%d\n",
		snap.Counters[ntcrypt.MetricVerifyMatch],
		snap.Counters[ntcrypt.MetricVerifyMismatch],
		snap.Counters[ntcrypt.MetricVerifyRateLimited],
	)
}

func runHashPhase(hasher *ntcrypt.Hasher, states []account, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				state := &states[r.Intn(len(states))]
				t0 := time.Now()
				got, err := hasher.Hash(state.password)
				d := time.Since(t0)
				if err != nil || got != state.encoded {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runVerifyPhase(ctx context.Context, hasher *ntcrypt.Hasher, states []account, ops, concurrency int, wrongRatio float64) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				state := &states[r.Intn(len(states))]
				pw := state.password
				wantMatch := r.Float64() >= wrongRatio
				if !wantMatch {
					pw += "!"
				}

				t0 := time.Now()
				ok, err := hasher.Verify(ctx, state.id, pw, state.encoded)
				d := time.Since(t0)
				if err != nil && !errors.Is(err, ntcrypt.ErrVerifyRateLimited) {
					atomic.AddInt64(&failures, 1)
				} else if err == nil && ok != wantMatch {
					atomic.AddInt64(&failures, 1)
				}

				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func passwordFor(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	n := 8 + i%24
	out := make([]byte, n)
	for j := range out {
		out[j] = alphabet[(i*31+j*17+7)%len(alphabet)]
	}
	return string(out)
}
