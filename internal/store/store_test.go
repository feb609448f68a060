// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"customblog/internal/database"
	"customblog/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "customblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "customblog")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testMember inserts a member with a unique email and registers cleanup of
// everything it owns.
func testMember(t *testing.T, db *sql.DB) *models.Member {
	t.Helper()

	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	m := &models.Member{
		Email:        "store-test-" + uuid.NewString() + "@example.com",
		PasswordHash: hash,
		DisplayName:  "Store Test",
	}
	if err := NewMemberStore(db).Create(context.Background(), m); err != nil {
		t.Fatalf("create member: %v", err)
	}
	t.Cleanup(func() { cleanMember(db, m.ID) })
	return m
}

// cleanMember removes a member and all rows hanging off its blogs.
func cleanMember(db *sql.DB, memberID uuid.UUID) {
	db.Exec(`DELETE FROM comments WHERE article_id IN (
		SELECT a.id FROM articles a JOIN blogs b ON b.id = a.blog_id WHERE b.member_id = $1)`, memberID)
	db.Exec(`DELETE FROM comments WHERE author_id = $1`, memberID)
	db.Exec(`DELETE FROM articles WHERE blog_id IN (SELECT id FROM blogs WHERE member_id = $1)`, memberID)
	db.Exec(`DELETE FROM categories WHERE blog_id IN (SELECT id FROM blogs WHERE member_id = $1) AND parent_id IS NOT NULL`, memberID)
	db.Exec(`DELETE FROM categories WHERE blog_id IN (SELECT id FROM blogs WHERE member_id = $1)`, memberID)
	db.Exec(`DELETE FROM blogs WHERE member_id = $1`, memberID)
	db.Exec(`DELETE FROM members WHERE id = $1`, memberID)
}
