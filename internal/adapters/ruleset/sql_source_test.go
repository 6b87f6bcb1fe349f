package ruleset

import (
	"database/sql"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/config"
	"github.com/mailguard/mail-guardian/internal/core"
)

func newSQLiteSource(t *testing.T) (*SQLSource, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.db")
	fallback := NewConfigSource(config.NewFromViper(config.NewEmptyViper()), zap.NewNop())
	return NewSQLiteSource(path, fallback, zap.NewNop()), path
}

func TestSQLiteSourceEmptyDatabaseFallsBack(t *testing.T) {
	source, _ := newSQLiteSource(t)

	rs, err := source.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	want := core.DefaultRuleset()
	if len(rs.Keywords) != len(want.Keywords) {
		t.Errorf("keywords = %d, want fallback count %d", len(rs.Keywords), len(want.Keywords))
	}
	if rs.HighThreshold != want.HighThreshold {
		t.Errorf("high threshold = %d, want fallback %d", rs.HighThreshold, want.HighThreshold)
	}
}

func TestSQLiteSourceOverrides(t *testing.T) {
	source, path := newSQLiteSource(t)

	// First load creates the schema.
	if _, err := source.Load(); err != nil {
		t.Fatalf("initial Load() = %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	for _, stmt := range []string{
		`INSERT INTO keyword_rules (keyword, weight) VALUES ('wire transfer', 15)`,
		`INSERT INTO keyword_rules (keyword, weight) VALUES ('crypto', 9)`,
		`INSERT INTO engine_settings (name, value) VALUES ('high_threshold', 80)`,
		`INSERT INTO engine_settings (name, value) VALUES ('auth_failure_weight', 50)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close database: %v", err)
	}

	rs, err := source.Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	// Keyword rows replace the fallback list, sorted by keyword.
	want := []core.KeywordRule{
		{Keyword: "crypto", Weight: 9},
		{Keyword: "wire transfer", Weight: 15},
	}
	if len(rs.Keywords) != len(want) {
		t.Fatalf("keywords = %+v, want %+v", rs.Keywords, want)
	}
	for i := range want {
		if rs.Keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %+v, want %+v", i, rs.Keywords[i], want[i])
		}
	}

	if rs.HighThreshold != 80 {
		t.Errorf("high threshold = %d, want 80", rs.HighThreshold)
	}
	if rs.AuthFailureWeight != 50 {
		t.Errorf("auth failure weight = %d, want 50", rs.AuthFailureWeight)
	}
	// Settings the database does not carry keep fallback values.
	if rs.MediumThreshold != core.DefaultRuleset().MediumThreshold {
		t.Errorf("medium threshold = %d, want fallback", rs.MediumThreshold)
	}
}

func TestSQLiteSourceRejectsInvalidSettings(t *testing.T) {
	source, path := newSQLiteSource(t)

	if _, err := source.Load(); err != nil {
		t.Fatalf("initial Load() = %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// High threshold below medium threshold is invalid.
	if _, err := db.Exec(`INSERT INTO engine_settings (name, value) VALUES ('high_threshold', 10)`); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close database: %v", err)
	}

	if _, err := source.Load(); err == nil {
		t.Error("Load() = nil, want validation error")
	}
}
