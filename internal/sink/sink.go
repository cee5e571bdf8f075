// ABOUTME: Output sinks for the reconstructed dataset.
// ABOUTME: Dispatches to CSV, Parquet, or SQLite writers by format name.
package sink

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/akeil/wellkit/internal/series"
)

// Format names one supported output encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatSQLite  Format = "sqlite"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatParquet:
		return FormatParquet, nil
	case FormatSQLite:
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unsupported format %q (expected csv|parquet|sqlite)", s)
}

// Write materializes the dataset under dir in the given format and
// returns the paths of the files it wrote.
func Write(ds *series.Dataset, format Format, dir string) ([]string, error) {
	switch format {
	case FormatCSV:
		return WriteCSV(ds, dir)
	case FormatParquet:
		return WriteParquet(ds, dir)
	case FormatSQLite:
		return WriteSQLite(ds, dir)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
