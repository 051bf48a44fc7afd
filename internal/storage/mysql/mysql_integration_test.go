//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotelbook/internal/domain"
	mysqlrepo "hotelbook/internal/storage/mysql"
)

// ---------- small helpers ----------
func pint(i int) *int           { return &i }
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertAndQuery(t *testing.T) {
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotelbook",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "hotelbook")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Arrange — seed with valid JSON blobs
	h := domain.Hotel{
		ID:           "h-10001",
		Name:         "Grand Palace",
		City:         "Pune",
		Price:        1800,
		Rating:       pfloat(4.4),
		ReviewsCount: pint(37),
		Amenities:    []string{"wifi"},
		Images:       []string{},
		RawJSON:      []byte(`{}`),
	}
	if err := repo.UpsertHotel(ctx, h); err != nil {
		t.Fatalf("UpsertHotel: %v", err)
	}

	// Upsert again with updated fields; same row must be overwritten.
	h.Price = 1500
	h.OriginalPrice = pfloat(1800)
	if err := repo.UpsertHotel(ctx, h); err != nil {
		t.Fatalf("second UpsertHotel: %v", err)
	}

	got, err := repo.GetHotel(ctx, "h-10001")
	if err != nil {
		t.Fatalf("GetHotel: %v", err)
	}
	if got.Name != "Grand Palace" || got.Price != 1500 {
		t.Fatalf("unexpected hotel: %+v", got)
	}
	if got.OriginalPrice == nil || *got.OriginalPrice != 1800 {
		t.Fatalf("original price not persisted: %+v", got.OriginalPrice)
	}
	if got.ReviewsCount == nil || *got.ReviewsCount != 37 {
		t.Fatalf("reviews not persisted: %+v", got.ReviewsCount)
	}
	if len(got.Amenities) != 1 || got.Amenities[0] != "wifi" {
		t.Fatalf("amenities not persisted: %+v", got.Amenities)
	}

	if _, err := repo.GetHotel(ctx, "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	all, err := repo.ListHotels(ctx)
	if err != nil {
		t.Fatalf("ListHotels: %v", err)
	}
	if len(all) != 1 || all[0].ID != "h-10001" {
		t.Fatalf("unexpected listing: %+v", all)
	}
}
