package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dukerupert/schompf/internal/store"
)

// run executes the CLI in an empty working directory and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	cfgFile = ""

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestMigrateImport(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "legacy.json")
	dbPath := filepath.Join(dir, "db.json")
	writeFile(t, legacy, `{"menu":{"dishes":[
		{"title":"Pfannkuchen","standardAmount":4,"ingredients":[{"name":"Mehl","amount":{"value":250,"unit":"g"}}]},
		{"title":""}]}}`)

	out, err := run(t, "migrate", "import", legacy, "--db-path", dbPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, "1 dishes imported") || !strings.Contains(out, "1 skipped") {
		t.Errorf("output = %q", out)
	}

	backend := store.NewFileBackend(dbPath)
	data, err := backend.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	doc, err := store.DecodeDocument(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Dishes) != 1 || doc.Dishes[0].DefaultServings != 4 {
		t.Errorf("dishes = %+v", doc.Dishes)
	}

	if _, err := run(t, "migrate", "import", legacy, "--db-path", dbPath); err == nil {
		t.Error("second import without --force should fail")
	}
	if _, err := run(t, "migrate", "import", legacy, "--db-path", dbPath, "--force"); err != nil {
		t.Errorf("forced import: %v", err)
	}
}

func TestMigrateUpgrade(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db.json")
	original := `{"dishes":[{"id":"d1","name":"Suppe"}]}`
	writeFile(t, dbPath, original)

	out, err := run(t, "migrate", "--dry-run", "--db-path", dbPath)
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if out == "" {
		t.Error("dry run should print a report")
	}
	data, _ := os.ReadFile(dbPath)
	if string(data) != original {
		t.Error("dry run must not write")
	}

	if _, err := run(t, "migrate", "--db-path", dbPath); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	data, _ = os.ReadFile(dbPath)
	if !bytes.Contains(data, []byte(`"published"`)) {
		t.Errorf("document not upgraded: %s", data)
	}
}

func TestBackupCommandsRequireConfiguration(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "db.json")
	if _, err := run(t, "backup", "list", "--db-path", dbPath); err == nil {
		t.Error("backup list without S3 settings should fail")
	}
}
