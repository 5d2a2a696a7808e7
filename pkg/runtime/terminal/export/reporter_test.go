package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/geff/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		SiteName:        "Zvenigorod",
		SiteCode:        "ZVG",
		CalculationDate: time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
		Gradient:        -2.5,
		Heights:         domain.Heights{Factory: 80.60, Mod: 7.08},
		Aggregate: domain.AggregateReport{
			Gravity:           980000.10,
			SetupHeight:       12.40,
			EffectiveHeight:   85.92,
			StandardDeviation: 1.118033988749895,
			Difference:        0.04,
		},
		North: domain.AzimuthResult{
			Azimuth: domain.AzimuthNorth, ISO: "2017-01-20 10:15", MJD: "57773",
			Bulletin: domain.BulletinEOP14C04, ExpectedSets: 25, Drops: 100,
			Gravity: 980000.12, StandardDeviation: 1, SetupHeight: 12.35, EffectiveHeight: 85.87,
		},
		South: domain.AzimuthResult{
			Azimuth: domain.AzimuthSouth, ISO: "2017-01-21 09:40", MJD: "57774",
			Bulletin: domain.BulletinDefault, ExpectedSets: 24, Drops: 98,
			Gravity: 980000.08, StandardDeviation: 2, SetupHeight: 12.45, EffectiveHeight: 85.97,
		},
	}
}

const sampleText = `Recalculation Report

Site Name:  Zvenigorod
Site Code:  ZVG
Calculation Date:  2026-03-14
Gravity_eff:  980000.10 µGal
Standard Deviation:  1.12 µGal
Vertical Gradient:  -2.50 µGal/cm
Effective Height:  85.92 cm
Setup Height:  12.40 cm
Height_mod:  7.08 cm
Factory Height:  80.60 cm

+---------+------------------+------+-------+-----------+------+---------+
| Azimuth |  Start DateTime  | Sets | Drops |   g_eff   |  sd  | h_setup |
+---------+------------------+------+-------+-----------+------+---------+
|  north  | 2017-01-20 10:15 |  25  |  100  | 980000.12 | 1.00 |  12.35  |
|  south  | 2017-01-21 09:40 |  24  |   98  | 980000.08 | 2.00 |  12.45  |
|  result |                  |      |       | 980000.10 | 1.12 |  12.40  |
+---------+------------------+------+-------+-----------+------+---------+

Azimuth Difference (N-S):  0.04 µGal`

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer

	err := NewReporter(&buf).Handle(sampleReport())

	require.NoError(t, err)
	assert.Equal(t, sampleText, buf.String())
}

func TestTable_Widths(t *testing.T) {
	table := Table{
		Header: []string{"a", "bb"},
		Rows:   [][]string{{"ccc", ""}, {"", "µµµ"}},
	}

	assert.Equal(t, []int{3, 3}, table.Widths())
}

func TestCenter(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 5, "  ab "},
		{"abc", 5, " abc "},
		{"98", 5, "  98 "},
		{"result", 7, " result"},
		{"12.4", 7, "  12.4 "},
		{"north", 7, " north "},
		{"µGal", 7, "  µGal "},
		{"", 4, "    "},
		{"abcdef", 5, "abcdef"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, center(tt.text, tt.width), "center(%q, %d)", tt.text, tt.width)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale report that is longer than nothing"), 0o644))

	require.NoError(t, WriteFile(path, sampleReport()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleText, string(content))
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteYAML(&buf, sampleReport()))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "ZVG", doc["site_code"])
	assert.Equal(t, "2026-03-14", doc["calculation_date"])

	result := doc["result"].(map[string]any)
	assert.InDelta(t, 980000.10, result["gravity_microgal"], 1e-9)
	assert.InDelta(t, 0.04, result["difference_microgal"], 1e-9)

	azimuths := doc["azimuths"].([]any)
	require.Len(t, azimuths, 2)
	south := azimuths[1].(map[string]any)
	assert.Equal(t, "south", south["azimuth"])
	assert.Equal(t, "Default", south["bulletin"])
	assert.Equal(t, 98, south["drops"])
	assert.Equal(t, "57774", south["mjd"])
}
