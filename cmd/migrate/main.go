// Comando migrate aplica las migraciones SQL de la base de identidades.
// Por defecto usa las migraciones embebidas en el binario; con -dir se
// pueden aplicar archivos sueltos (desarrollo).
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/sp1ral-dev/veridian/internal/config"
	migrations "github.com/sp1ral-dev/veridian/migrations/postgres"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.example.yaml", "Path to YAML config")
		dir        = flag.String("dir", "", "Migrations directory override (default: embedded)")
	)
	flag.Parse()

	_ = godotenv.Load()

	// Positional args: [action] [steps]
	action := "up"
	steps := 0
	args := flag.Args()
	if len(args) >= 1 && args[0] != "" {
		action = strings.ToLower(args[0])
	}
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			steps = n
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	var source fs.FS = migrations.FS
	if *dir != "" {
		source = os.DirFS(*dir)
	}

	switch action {
	case "up":
		run(ctx, pool, source, "_up.sql", steps, false)
	case "down":
		run(ctx, pool, source, "_down.sql", steps, true)
	default:
		log.Fatalf("unknown action %q. Use: up | down [steps]", action)
	}
}

func run(ctx context.Context, pool *pgxpool.Pool, source fs.FS, suffix string, steps int, reverse bool) {
	files, err := listSQL(source, suffix)
	if err != nil {
		log.Fatalf("list %s: %v", suffix, err)
	}
	if len(files) == 0 {
		log.Printf("No *%s migrations found. Nothing to do.", suffix)
		return
	}
	sort.Strings(files)
	if reverse {
		reverseInPlace(files)
	}
	if steps > 0 && steps < len(files) {
		files = files[:steps]
	}
	log.Printf("Applying %d migration(s)...", len(files))
	for _, f := range files {
		if err := execSQLFile(ctx, pool, source, f); err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}
	}
	log.Println("Migrations completed.")
}

func listSQL(source fs.FS, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(source, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), strings.ToLower(suffix)) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func reverseInPlace(ss []string) {
	for i, j := 0, len(ss)-1; i < j; i, j = i+1, j-1 {
		ss[i], ss[j] = ss[j], ss[i]
	}
}

func execSQLFile(ctx context.Context, pool *pgxpool.Pool, source fs.FS, name string) error {
	b, err := fs.ReadFile(source, name)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	start := time.Now()
	if _, err := pool.Exec(ctx, string(b)); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	log.Printf("OK %s (%s)", filepath.Base(name), time.Since(start).Truncate(time.Millisecond))
	return nil
}
