// ABOUTME: Integration tests for the wellkit pipeline.
// ABOUTME: Exercises export layout -> reconstruction -> sinks end to end.
package test

import (
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/akeil/wellkit/internal/rawstore"
	"github.com/akeil/wellkit/internal/series"
	"github.com/akeil/wellkit/internal/sink"
)

// writeExport lays out a two-day raw export on disk the way the
// exporter writes it.
func writeExport(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"activities/2024-03-10_summary.json": `// summary for 2024-03-10
{
  "calendarDate": "2024-03-10",
  "wellnessStartTimeLocal": "2024-03-10T00:00:00.0",
  "wellnessStartTimeGmt": "2024-03-09T23:00:00.0",
  "wellnessEndTimeGmt": "2024-03-10T23:00:00.0",
  "totalSteps": 9500,
  "restingHeartRate": 52
}`,
		"activities/2024-03-10_steps.json": `[
  {"startGMT": "2024-03-10T07:00:00.0", "endGMT": "2024-03-10T07:15:00.0", "steps": 150, "primaryActivityLevel": "active"}
]`,
		"heart_rate/2024-03-10_hr.json": `{
  "heartRateValues": [[1710054000000, 58], [1710054060000, 60]]
}`,
		"activities/2024-03-11_summary.json": `{
  "calendarDate": "2024-03-11",
  "wellnessStartTimeLocal": "2024-03-11T00:00:00.0",
  "wellnessStartTimeGmt": "2024-03-10T23:00:00.0",
  "wellnessEndTimeGmt": "2024-03-11T23:00:00.0",
  "totalSteps": 4200
}`,
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestPipelineToCSV(t *testing.T) {
	root := writeExport(t)
	out := t.TempDir()

	store := rawstore.NewFileStore(root)
	ds, err := series.Build(store, series.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(ds.Summaries) != 2 {
		t.Fatalf("got %d summary rows, want 2", len(ds.Summaries))
	}
	if len(ds.Minutes) != 2880 {
		t.Fatalf("got %d minute rows, want 2880", len(ds.Minutes))
	}

	paths, err := sink.Write(&ds, sink.FormatCSV, out)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d output files, want 2", len(paths))
	}

	f, err := os.Open(filepath.Join(out, "minutes.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2881 {
		t.Errorf("minutes.csv has %d lines, want header + 2880", len(records))
	}

	// the active steps interval shows up with 10 steps/min
	stepsSeen := false
	for _, rec := range records[1:] {
		if rec[2] == "10" && rec[11] == "active" {
			stepsSeen = true
			break
		}
	}
	if !stepsSeen {
		t.Error("expected redistributed steps rows in minutes.csv")
	}
}

func TestPipelineToSQLite(t *testing.T) {
	root := writeExport(t)
	out := t.TempDir()

	store := rawstore.NewFileStore(root)
	ds, err := series.Build(store, series.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	paths, err := sink.Write(&ds, sink.FormatSQLite, out)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	db, err := sql.Open("sqlite", paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM minutes").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2880 {
		t.Errorf("minutes table has %d rows, want 2880", n)
	}

	var steps sql.NullFloat64
	err = db.QueryRow("SELECT total_steps FROM daily_summary WHERE calendar_date = '2024-03-10'").Scan(&steps)
	if err != nil {
		t.Fatal(err)
	}
	if !steps.Valid || steps.Float64 != 9500 {
		t.Errorf("total_steps = %+v, want 9500", steps)
	}
}

func TestPipelineMissingExportIsFatal(t *testing.T) {
	store := rawstore.NewFileStore(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := series.Build(store, series.DefaultOptions(), nil); err == nil {
		t.Error("a missing export directory must abort the run")
	}
}
