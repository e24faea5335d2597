package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/launchdash/launchdash/pkg/types"
)

// launchCSV mirrors the layout of the published launch file, including the
// unnamed index column and the columns the dashboard ignores.
const launchCSV = `,Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
0,1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
1,2,CCAFS LC-40,0,0.0,F9 v1.0  B0004,v1.0
2,3,CCAFS LC-40,0,525.0,F9 v1.0  B0005,v1.0
3,4,VAFB SLC-4E,0,500.0,F9 v1.1  B1003,v1.1
4,5,KSC LC-39A,1,2490.0,F9 FT B1031.1,FT
5,6,KSC LC-39A,1,9600.7,F9 B4 B1041.1,B4
6,7,CCAFS SLC-40,1,3669.0,F9 FT B1035.2,FT
7,8,VAFB SLC-4E,1,9600.0,F9 B4 B1041.2,B4
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestRead_Launches(t *testing.T) {
	ds, err := Read(strings.NewReader(launchCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if ds.Len() != 8 {
		t.Errorf("Len: got %d, want 8", ds.Len())
	}
	if ds.MinPayload() != 0 {
		t.Errorf("MinPayload: got %d, want 0", ds.MinPayload())
	}
	// 9600.7 truncates to 9600.
	if ds.MaxPayload() != 9600 {
		t.Errorf("MaxPayload: got %d, want 9600", ds.MaxPayload())
	}
	want := []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}
	got := ds.Sites()
	if len(got) != len(want) {
		t.Fatalf("Sites: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sites[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
	r := ds.Records()[4]
	if r.Site != "KSC LC-39A" || r.PayloadKg != 2490 || r.Class != 1 || r.BoosterCategory != "FT" {
		t.Errorf("Records[4]: got %+v", r)
	}
}

func TestRead_Bounds(t *testing.T) {
	ds, err := Read(strings.NewReader(launchCSV))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	b := ds.Bounds()
	if b.Low != 0 || b.High != 9600 {
		t.Errorf("Bounds: got %+v, want {0 9600}", b)
	}
}

func TestRead_MissingColumn(t *testing.T) {
	csv := "Launch Site,class,Booster Version Category\nA,1,v1\n"
	_, err := Read(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing payload column, got nil")
	}
	if !strings.Contains(err.Error(), ColPayload) {
		t.Errorf("error %q does not name the missing column", err)
	}
}

func TestRead_BadPayload(t *testing.T) {
	csv := "Launch Site,Payload Mass (kg),class,Booster Version Category\nA,heavy,1,v1\n"
	if _, err := Read(strings.NewReader(csv)); err == nil {
		t.Fatal("expected error for non-numeric payload, got nil")
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	csv := "Launch Site,Payload Mass (kg),class,Booster Version Category\n"
	_, err := Read(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for empty dataset, got nil")
	}
}

func TestLoad_File(t *testing.T) {
	p := writeFile(t, "launches.csv", []byte(launchCSV))
	ds, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 8 {
		t.Errorf("Len: got %d, want 8", ds.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoad_RejectsBinary(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	p := writeFile(t, "launches.csv", png)
	_, err := Load(p)
	if err == nil {
		t.Fatal("expected error for binary input, got nil")
	}
	if !strings.Contains(err.Error(), "image/png") {
		t.Errorf("error %q does not report the detected type", err)
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("New(nil): got %v, want ErrNoRecords", err)
	}
}

func TestRecords_ReturnsCopy(t *testing.T) {
	ds, err := New([]types.Record{{Site: "A", PayloadKg: 1, Class: 1, BoosterCategory: "v1"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	recs := ds.Records()
	recs[0].Site = "mutated"
	if ds.Records()[0].Site != "A" {
		t.Error("Records: caller mutation leaked into the dataset")
	}
	sites := ds.Sites()
	sites[0] = "mutated"
	if ds.Sites()[0] != "A" {
		t.Error("Sites: caller mutation leaked into the dataset")
	}
}
