// ABOUTME: FileExporter pulls raw wellness JSON from a Client into the
// ABOUTME: on-disk export layout, one payload per metric per day.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/akeil/wellkit/internal/models"
)

// Manifest records one export run. It is written to the export root so
// later runs (and humans) can see what happened.
type Manifest struct {
	RunID           string            `json:"run_id"`
	StartedAt       time.Time         `json:"started_at"`
	FinishedAt      time.Time         `json:"finished_at"`
	DaysBack        int               `json:"days_back"`
	Written         []string          `json:"written"`
	Skipped         []string          `json:"skipped"`
	Failed          []string          `json:"failed"`
	BatteryStrategy map[string]string `json:"battery_strategy"`
}

// FileExporter writes raw payloads under root. Existing files are never
// re-fetched, so interrupted runs can be resumed.
type FileExporter struct {
	client Client
	root   string
	log    *log.Logger

	now func() time.Time
}

func NewFileExporter(client Client, root string, logger *log.Logger) *FileExporter {
	if logger == nil {
		logger = log.Default()
	}
	return &FileExporter{
		client: client,
		root:   root,
		log:    logger,
		now:    time.Now,
	}
}

// Run exports the last daysBack days (today inclusive) plus the
// account-level payloads, and writes a manifest. A failing payload is
// recorded and skipped; only filesystem-level failures abort the run.
func (e *FileExporter) Run(ctx context.Context, daysBack int) (*Manifest, error) {
	m := &Manifest{
		RunID:           uuid.NewString(),
		StartedAt:       e.now().UTC(),
		DaysBack:        daysBack,
		BatteryStrategy: map[string]string{},
	}

	if err := e.exportAccount(ctx, m); err != nil {
		return nil, err
	}

	today := e.now().UTC()
	for i := 0; i < daysBack; i++ {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		if err := e.exportDay(ctx, date, m); err != nil {
			return nil, err
		}
	}

	m.FinishedAt = e.now().UTC()
	if err := e.writeManifest(m); err != nil {
		return nil, err
	}
	e.log.Info("export finished",
		"run", m.RunID, "written", len(m.Written), "skipped", len(m.Skipped), "failed", len(m.Failed))
	return m, nil
}

func (e *FileExporter) exportAccount(ctx context.Context, m *Manifest) error {
	account := []struct {
		path  string
		fetch func(context.Context) (json.RawMessage, error)
	}{
		{"user_profile.json", e.client.UserProfile},
		{"device_last_used.json", e.client.DeviceLastUsed},
		{filepath.Join("body", "body_composition.json"), e.client.BodyComposition},
		{filepath.Join("activities", "activities_list.json"), func(ctx context.Context) (json.RawMessage, error) {
			return e.client.Activities(ctx, 0, 100)
		}},
	}
	for _, a := range account {
		if err := e.fetchOne(ctx, a.path, m, func() (json.RawMessage, error) {
			return a.fetch(ctx)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (e *FileExporter) exportDay(ctx context.Context, date string, m *Manifest) error {
	daily := []struct {
		kind  models.Kind
		fetch func(context.Context, string) (json.RawMessage, error)
	}{
		{models.KindSummary, e.client.UserSummary},
		{models.KindSteps, e.client.StepsData},
		{models.KindHeartRate, e.client.HeartRates},
		{models.KindStress, e.client.StressData},
		{models.KindSleep, e.client.SleepData},
		{models.KindHydration, e.client.HydrationData},
	}
	for _, d := range daily {
		rel := filepath.Join(d.kind.Dir(), d.kind.Filename(date))
		if err := e.fetchOne(ctx, rel, m, func() (json.RawMessage, error) {
			return d.fetch(ctx, date)
		}); err != nil {
			return err
		}
	}
	return e.exportBattery(ctx, date, m)
}

// exportBattery tries the client's battery strategies in priority order
// and records which one served the day.
func (e *FileExporter) exportBattery(ctx context.Context, date string, m *Manifest) error {
	kind := models.KindBodyBattery
	rel := filepath.Join(kind.Dir(), kind.Filename(date))
	if e.exists(rel) {
		m.Skipped = append(m.Skipped, rel)
		return nil
	}

	strategies := BatteryStrategies(e.client)
	if len(strategies) == 0 {
		e.log.Warn("client has no body battery capability", "date", date)
		m.Failed = append(m.Failed, rel)
		return nil
	}
	for _, s := range strategies {
		raw, err := s.Fetch(ctx, date)
		if err != nil {
			e.log.Warn("battery strategy failed", "strategy", s.Name, "date", date, "err", err)
			continue
		}
		if err := e.save(rel, raw); err != nil {
			return err
		}
		m.Written = append(m.Written, rel)
		m.BatteryStrategy[date] = s.Name
		return nil
	}
	m.Failed = append(m.Failed, rel)
	return nil
}

// fetchOne writes a single payload unless it already exists. A fetch
// error is logged and recorded, not returned; a write error is fatal.
func (e *FileExporter) fetchOne(ctx context.Context, rel string, m *Manifest, fetch func() (json.RawMessage, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.exists(rel) {
		m.Skipped = append(m.Skipped, rel)
		return nil
	}
	raw, err := fetch()
	if err != nil {
		e.log.Warn("fetch failed", "file", rel, "err", err)
		m.Failed = append(m.Failed, rel)
		return nil
	}
	if err := e.save(rel, raw); err != nil {
		return err
	}
	m.Written = append(m.Written, rel)
	return nil
}

func (e *FileExporter) exists(rel string) bool {
	_, err := os.Stat(filepath.Join(e.root, rel))
	return err == nil
}

func (e *FileExporter) save(rel string, raw json.RawMessage) error {
	path := filepath.Join(e.root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		// not valid JSON; keep the payload verbatim for inspection
		pretty.Reset()
		pretty.Write(raw)
	}
	if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	e.log.Debug("wrote payload", "file", rel, "bytes", pretty.Len())
	return nil
}

func (e *FileExporter) writeManifest(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	path := filepath.Join(e.root, "export_manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
