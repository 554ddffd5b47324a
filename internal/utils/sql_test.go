package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRemoveComments(t *testing.T) {
	sql := "SELECT 1; -- trailing note\nSELECT 2; /* block; comment */ SELECT 3;"
	got := RemoveComments(sql)

	if strings.Contains(got, "trailing") {
		t.Errorf("Expected line comment removed, got %q", got)
	}
	if strings.Contains(got, "block") {
		t.Errorf("Expected block comment removed, got %q", got)
	}
	for _, stmt := range []string{"SELECT 1;", "SELECT 2;", "SELECT 3;"} {
		if !strings.Contains(got, stmt) {
			t.Errorf("Expected %q to survive, got %q", stmt, got)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	script := `
-- seed data; with a semicolon
INSERT INTO t VALUES (1);

INSERT INTO t VALUES (2); /* done; almost */
UPDATE t SET x = 3
`
	got := SplitStatements(script)
	want := []string{
		"INSERT INTO t VALUES (1)",
		"INSERT INTO t VALUES (2)",
		"UPDATE t SET x = 3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSplitStatementsEmpty(t *testing.T) {
	if got := SplitStatements("-- only a comment\n"); got != nil {
		t.Errorf("Expected no statements, got %v", got)
	}
}

func TestContainsSQLKeyword(t *testing.T) {
	cases := []struct {
		sql     string
		keyword string
		want    bool
	}{
		{"DROP TABLE users", "DROP", true},
		{"drop table users", "DROP", true},
		{"SELECT dropped FROM t", "DROP", false},
		{"delete from orders", "DELETE", true},
		{"SELECT undeleted FROM t", "DELETE", false},
		{"TRUNCATE TABLE x", "TRUNCATE", true},
		{"SELECT 1", "DROP", false},
	}

	for _, tc := range cases {
		if got := ContainsSQLKeyword(tc.sql, tc.keyword); got != tc.want {
			t.Errorf("ContainsSQLKeyword(%q, %q): expected %v, got %v", tc.sql, tc.keyword, tc.want, got)
		}
	}
}

func TestHasDestructiveStatement(t *testing.T) {
	if hasDestructiveStatement([]string{"INSERT INTO t VALUES (1)", "UPDATE t SET x = 2"}) {
		t.Error("Expected inserts and updates to not count as destructive")
	}
	if !hasDestructiveStatement([]string{"INSERT INTO t VALUES (1)", "DELETE FROM t"}) {
		t.Error("Expected DELETE to count as destructive")
	}
	if !hasDestructiveStatement([]string{"DROP TABLE t"}) {
		t.Error("Expected DROP to count as destructive")
	}
}

func TestIsSelectQuery(t *testing.T) {
	for _, q := range []string{"SELECT 1", "select 1", "WITH x AS (SELECT 1) SELECT * FROM x", "EXPLAIN SELECT 1"} {
		if !isSelectQuery(q) {
			t.Errorf("Expected %q to be a select query", q)
		}
	}
	for _, q := range []string{"INSERT INTO t VALUES (1)", "DROP TABLE t"} {
		if isSelectQuery(q) {
			t.Errorf("Expected %q to not be a select query", q)
		}
	}
}

func TestResolveInput(t *testing.T) {
	content, isFile, err := resolveInput("SELECT 1", false, false)
	if err != nil {
		t.Fatalf("resolveInput failed: %v", err)
	}
	if isFile || content != "SELECT 1" {
		t.Errorf("Expected literal query, got isFile=%v content=%q", isFile, content)
	}

	tempDir, err := os.MkdirTemp("", "shopforge-raw-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "query.sql")
	if err := os.WriteFile(path, []byte("SELECT 42;"), 0644); err != nil {
		t.Fatalf("Failed to write SQL file: %v", err)
	}

	content, isFile, err = resolveInput(path, false, false)
	if err != nil {
		t.Fatalf("resolveInput failed: %v", err)
	}
	if !isFile || content != "SELECT 42;" {
		t.Errorf("Expected file content, got isFile=%v content=%q", isFile, content)
	}

	// An explicit query flag keeps the argument literal even when a
	// file of that name exists.
	content, isFile, err = resolveInput(path, true, false)
	if err != nil {
		t.Fatalf("resolveInput failed: %v", err)
	}
	if isFile || content != path {
		t.Errorf("Expected literal argument with query flag, got isFile=%v content=%q", isFile, content)
	}

	if _, _, err := resolveInput(filepath.Join(tempDir, "missing.sql"), false, true); err == nil {
		t.Error("Expected error for missing file with file flag")
	}
}
