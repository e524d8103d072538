package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "moodatlas.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE entries (id TEXT PRIMARY KEY, content TEXT)`); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO entries VALUES ('e1', 'first'), ('e2', 'second')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countEntries(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	return n
}

// steppedClock advances one minute per call.
func steppedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != mgr.BackupDir() {
		t.Errorf("backup written to %s, want dir %s", path, mgr.BackupDir())
	}
	if !strings.HasPrefix(filepath.Base(path), "moodatlas-") {
		t.Errorf("unexpected backup name %s", filepath.Base(path))
	}
	if got := countEntries(t, path); got != 2 {
		t.Errorf("backup has %d entries, want 2", got)
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Fatal("expected error when database does not exist")
	}
}

func TestUniqueNamesWithinSameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 1, 2, 8, 30, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	if !strings.HasSuffix(backups[0].Path, "-2.db") {
		t.Errorf("expected highest counter first, got %s", backups[0].Path)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3
	mgr.now = steppedClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local))

	var last string
	for i := 0; i < 5; i++ {
		path, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		last = path
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if backups[0].Path != last {
		t.Errorf("newest backup = %s, want %s", backups[0].Path, last)
	}

	latest, ok, err := mgr.Latest()
	if err != nil || !ok || latest.Path != last {
		t.Errorf("Latest() = %v, %v, %v", latest.Path, ok, err)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if backups, err := mgr.List(); err != nil || len(backups) != 0 {
		t.Fatalf("List on missing dir = %v, %v", backups, err)
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, name := range []string{"notes.txt", "moodatlas-garbage.db", "other-20240101-090000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.BackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected only the real backup, got %d", len(backups))
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppedClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("DELETE FROM entries"); err != nil {
		t.Fatalf("failed to delete entries: %v", err)
	}
	db.Close()

	safety, err := mgr.Restore(backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if safety == "" {
		t.Fatal("expected a safety backup of the current database")
	}
	if got := countEntries(t, safety); got != 0 {
		t.Errorf("safety backup has %d entries, want 0", got)
	}
	if got := countEntries(t, dbPath); got != 2 {
		t.Errorf("restored database has %d entries, want 2", got)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("this is not a sqlite database at all"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}
	if _, err := mgr.Restore(corrupt); err == nil {
		t.Error("expected error for corrupted backup")
	}
	if got := countEntries(t, dbPath); got != 2 {
		t.Errorf("database modified by failed restore: %d entries", got)
	}
}
