package launch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Flight Number,Launch Site,class,Payload Mass (kg),Booster Version,Booster Version Category
1,CCAFS LC-40,0,0.0,F9 v1.0  B0003,v1.0
2,CCAFS LC-40,0,525.0,F9 v1.0  B0005,v1.0
3,VAFB SLC-4E,1,9600.0,F9 FT B1029.1,FT
4,KSC LC-39A,1,2490.0,F9 FT B1031.1,FT
5,CCAFS LC-40,1,3600.0,F9 B4 B1041.1,B4
`

func records(ds *Dataset) []Record {
	var out []Record
	ds.Each(func(r Record) { out = append(out, r) })
	return out
}

func TestParse(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 5, ds.Len())
	assert.Equal(t, []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A"}, ds.Sites())
	assert.Equal(t, 0.0, ds.MinPayload())
	assert.Equal(t, 9600.0, ds.MaxPayload())

	first := records(ds)[0]
	assert.Equal(t, Record{
		FlightNumber:    1,
		Site:            "CCAFS LC-40",
		PayloadMassKg:   0,
		BoosterVersion:  "F9 v1.0  B0003",
		BoosterCategory: "v1.0",
		Class:           0,
	}, first)
	assert.False(t, first.Success())
	assert.True(t, records(ds)[2].Success())
}

func TestParse_OptionalColumnsAbsent(t *testing.T) {
	in := "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,100,FT,1\n"
	ds, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	rec := records(ds)[0]
	assert.Equal(t, 0, rec.FlightNumber)
	assert.Empty(t, rec.BoosterVersion)
	assert.Equal(t, "A", rec.Site)
}

func TestParse_HeaderBOMAndUnknownColumns(t *testing.T) {
	in := "\ufeffLaunch Site,Extra,Payload Mass (kg),Booster Version Category,class\nA,x,100,FT,1\n"
	ds, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ds.Sites())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty input", "", ErrEmpty},
		{"header only", "Launch Site,Payload Mass (kg),Booster Version Category,class\n", ErrEmpty},
		{"missing class", "Launch Site,Payload Mass (kg),Booster Version Category\nA,1,FT\n", ErrMissingColumn},
		{"bad payload", "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,heavy,FT,1\n", ErrMalformedRow},
		{"bad class", "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,1,FT,2\n", ErrMalformedRow},
		{"short row", "Launch Site,Payload Mass (kg),Booster Version Category,class\nA,1\n", ErrMalformedRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launches.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDataset_Immutable(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	ds.Each(func(r Record) { r.Site = "mutated" })
	sites := ds.Sites()
	sites[0] = "mutated"

	assert.Equal(t, "CCAFS LC-40", records(ds)[0].Site)
	assert.Equal(t, "CCAFS LC-40", ds.Sites()[0])
}

func TestDataset_SiteLookups(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 1, ds.SiteOrder("VAFB SLC-4E"))
	assert.Equal(t, -1, ds.SiteOrder("Boca Chica"))
}

func TestNew_Empty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}
