package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/skyup-digital/skyup-api/internal/config"
	"github.com/skyup-digital/skyup-api/internal/logger"
	"github.com/skyup-digital/skyup-api/internal/postgres"
)

// dbcheck diagnoses database connectivity: it resolves the configured host
// and then pings the database with backoff.
func main() {
	service := flag.String("srv", "", "Also look up _<srv>._tcp SRV records for the host, e.g. postgresql")
	timeout := flag.Duration("timeout", 30*time.Second, "How long to keep retrying the database ping")
	skipPing := flag.Bool("dns-only", false, "Only run the DNS checks")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+10*time.Second)
	defer cancel()

	res, err := resolveHost(ctx, net.DefaultResolver, cfg.Postgres.Host, *service)
	if res == nil {
		logger.Errorw("DNS lookup failed", "host", cfg.Postgres.Host, "error", err)
		os.Exit(1)
	}
	logger.Infow("resolved database host",
		"host", res.Host,
		"ipv4", res.IPv4,
		"ipv6", res.IPv6,
	)
	if err != nil {
		logger.Warnw("SRV lookup failed; connect with an explicit host and port instead", "error", err)
	}
	for i, rec := range res.SRV {
		fmt.Printf("%d. %s:%d (priority: %d, weight: %d)\n", i+1, rec.Target, rec.Port, rec.Priority, rec.Weight)
	}
	if res.Hosts != "" {
		fmt.Printf("hosts from SRV records: %s\n", res.Hosts)
	}

	if *skipPing {
		return
	}

	db, err := sqlx.Open("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalw("Failed to open database handle", "error", err)
	}
	defer db.Close()

	start := time.Now()
	if err := postgres.Ping(ctx, db, *timeout, logger); err != nil {
		logger.Errorw("database unreachable", "error", err, "elapsed", time.Since(start).String())
		os.Exit(1)
	}

	logger.Infow("database reachable",
		"host", cfg.Postgres.Host,
		"port", cfg.Postgres.Port,
		"dbname", cfg.Postgres.DBName,
		"elapsed", time.Since(start).String(),
	)
}
