package engine

import "testing"

func TestOpen_RegistersNgramFunctions(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("CREATE TABLE country(name TEXT)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO country(name) VALUES ('France'),(NULL)"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var score float64
	if err := db.QueryRow("SELECT ngram_similarity(name, 'France') FROM country WHERE name IS NOT NULL").Scan(&score); err != nil {
		t.Fatalf("ngram_similarity: %v", err)
	}
	if score < 0.999 {
		t.Fatalf("identical text scored %v, want 1", score)
	}
	var null *float64
	if err := db.QueryRow("SELECT ngram_distance(name, 'France') FROM country WHERE name IS NULL").Scan(&null); err != nil {
		t.Fatalf("ngram_distance: %v", err)
	}
	if null != nil {
		t.Fatalf("NULL input produced %v", *null)
	}
}
