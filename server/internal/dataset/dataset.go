package dataset

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/launchdash/launchdash/pkg/types"
)

// Column names of the launch record file.
const (
	ColSite    = "Launch Site"
	ColPayload = "Payload Mass (kg)"
	ColClass   = "class"
	ColBooster = "Booster Version Category"
)

// columns is the fixed column set kept in the frame, in frame order.
var columns = []string{ColSite, ColPayload, ColClass, ColBooster}

// ErrNoRecords is returned when the file has a header but no rows.
var ErrNoRecords = errors.New("dataset: no records")

// Dataset is the read-only launch record collection plus the values derived
// from it at load time.
type Dataset struct {
	frame   dataframe.DataFrame
	records []types.Record
	sites   []string
	siteSet map[string]struct{}

	minPayload int
	maxPayload int
}

// Load reads the CSV file at path.
func Load(path string) (*Dataset, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: detect %q: %w", path, err)
	}
	if !isText(mt) {
		return nil, fmt.Errorf("dataset: %q is %s, want a text/csv file", path, mt.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %q: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w (file %q)", err, path)
	}
	return ds, nil
}

// Read parses CSV launch records from r.
func Read(r io.Reader) (*Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			ColSite:    series.String,
			ColPayload: series.Float,
			ColClass:   series.Int,
			ColBooster: series.String,
		}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("dataset: parse csv: %w", df.Err)
	}
	if err := requireColumns(df.Names()); err != nil {
		return nil, err
	}

	df = df.Select(columns)
	if df.Err != nil {
		return nil, fmt.Errorf("dataset: select columns: %w", df.Err)
	}
	return fromFrame(df)
}

// New builds a Dataset from in-memory records.
func New(records []types.Record) (*Dataset, error) {
	sites := make([]string, len(records))
	payloads := make([]float64, len(records))
	classes := make([]int, len(records))
	boosters := make([]string, len(records))
	for i, r := range records {
		sites[i] = r.Site
		payloads[i] = r.PayloadKg
		classes[i] = r.Class
		boosters[i] = r.BoosterCategory
	}
	df := dataframe.New(
		series.New(sites, series.String, ColSite),
		series.New(payloads, series.Float, ColPayload),
		series.New(classes, series.Int, ColClass),
		series.New(boosters, series.String, ColBooster),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("dataset: build frame: %w", df.Err)
	}
	return fromFrame(df)
}

func fromFrame(df dataframe.DataFrame) (*Dataset, error) {
	if df.Nrow() == 0 {
		return nil, ErrNoRecords
	}
	records, err := recordsOf(df)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		frame:   df,
		records: records,
		siteSet: make(map[string]struct{}),
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		if _, seen := ds.siteSet[r.Site]; !seen {
			ds.siteSet[r.Site] = struct{}{}
			ds.sites = append(ds.sites, r.Site)
		}
		lo = math.Min(lo, r.PayloadKg)
		hi = math.Max(hi, r.PayloadKg)
	}
	ds.minPayload = int(math.Trunc(lo))
	ds.maxPayload = int(math.Trunc(hi))
	return ds, nil
}

// recordsOf converts every frame row into a Record, rejecting missing cells.
func recordsOf(df dataframe.DataFrame) ([]types.Record, error) {
	n := df.Nrow()
	if n == 0 {
		return nil, nil
	}
	sites := df.Col(ColSite).Records()
	payloads := df.Col(ColPayload).Float()
	classes, err := df.Col(ColClass).Int()
	if err != nil {
		return nil, fmt.Errorf("dataset: column %q: %w", ColClass, err)
	}
	boosters := df.Col(ColBooster).Records()

	out := make([]types.Record, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(payloads[i]) {
			return nil, fmt.Errorf("dataset: row %d: column %q is not a number", i+1, ColPayload)
		}
		out[i] = types.Record{
			Site:            sites[i],
			PayloadKg:       payloads[i],
			Class:           classes[i],
			BoosterCategory: boosters[i],
		}
	}
	return out, nil
}

func requireColumns(names []string) error {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, c := range columns {
		if !have[c] {
			return fmt.Errorf("dataset: missing column %q", c)
		}
	}
	return nil
}

func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records in file order.
func (d *Dataset) Records() []types.Record {
	out := make([]types.Record, len(d.records))
	copy(out, d.records)
	return out
}

// Sites returns the distinct site names in first-appearance order.
func (d *Dataset) Sites() []string {
	out := make([]string, len(d.sites))
	copy(out, d.sites)
	return out
}

// HasSite reports whether any record was launched from name.
func (d *Dataset) HasSite(name string) bool {
	_, ok := d.siteSet[name]
	return ok
}

// MinPayload is the smallest payload mass, truncated toward zero.
func (d *Dataset) MinPayload() int { return d.minPayload }

// MaxPayload is the largest payload mass, truncated toward zero.
func (d *Dataset) MaxPayload() int { return d.maxPayload }

// Bounds returns the default slider selection [MinPayload, MaxPayload].
func (d *Dataset) Bounds() types.PayloadRange {
	return types.PayloadRange{Low: float64(d.minPayload), High: float64(d.maxPayload)}
}

// Columns returns the frame's column names.
func (d *Dataset) Columns() []string { return d.frame.Names() }
