package survey

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/de-tools/geff/pkg/models/domain"
	"github.com/de-tools/geff/pkg/services/gui"
	"github.com/de-tools/geff/pkg/services/projectfile"
	"github.com/de-tools/geff/pkg/services/workflow"
	"github.com/de-tools/geff/pkg/store/projectlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fg5File builds a minimal project file holding a start record and both set
// counters.
func fg5File(unix float64, projectSets, factSets int16) []byte {
	total := unix + 2938117104000
	days := math.Floor(total / 2700)
	hours := math.Round((total - days*2700) / 2700 * 4294967295)

	data := []byte{0x4D, 0x47, 0x0A, 0x00}
	data = binary.LittleEndian.AppendUint32(data, uint32(hours))
	data = binary.LittleEndian.AppendUint32(data, uint32(days))
	data = append(data, 0xE0, 0x11, 0x00, 0x00, 0x0B, 0x7F)

	data = append(data, 0x24, 0x40)
	data = append(data, make([]byte, 24)...)
	data = append(data, 0x01)
	data = append(data, make([]byte, 7)...)
	data = binary.LittleEndian.AppendUint16(data, uint16(projectSets))

	data = append(data, 0xF4, 0xBF)
	data = append(data, make([]byte, 16)...)
	data = binary.LittleEndian.AppendUint16(data, uint16(factSets))
	return append(data, 0xAA, 0xBB)
}

type station struct {
	setupHeight string
	drops       string
	gravity     string
	sd          string
}

// surveyDriver plays the processing application for whichever azimuth
// project was launched last.
type surveyDriver struct {
	mu       sync.Mutex
	stations map[string]station
	current  station
	tab      string
	counter  int
	launches []string
}

func (d *surveyDriver) Launch(_ context.Context, _ string, args ...string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	az := strings.TrimSuffix(filepath.Base(args[0]), ".fg5")
	d.current = d.stations[az]
	d.tab, d.counter = "", 0
	d.launches = append(d.launches, az)
	return nil
}

func (d *surveyDriver) Terminate(context.Context, string) error { return nil }

func (d *surveyDriver) ListControls(context.Context, string) ([]string, error) {
	return []string{"mnu0", "tbar0", "ico0", "ico1", "ico2", "ico3", "btn0", "btn1", "btn2", "ico4", "ico5", "ico6", "btn3"}, nil
}

func (d *surveyDriver) GetText(_ context.Context, window, control string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch window + "/" + control {
	case "frmSetup/txt0":
		return "Zvenigorod", nil
	case "frmSetup/txt1":
		if d.tab == "ptabAcquisition" {
			return d.current.drops, nil
		}
		return "ZVG", nil
	case "frmSetup/txt7":
		return d.current.setupHeight, nil
	case "frmState/txt32":
		n := d.counter
		d.counter++
		return strconv.Itoa(n), nil
	case "frmState/txt42":
		return d.current.gravity, nil
	case "frmState/txt43":
		return d.current.sd, nil
	}
	return "", nil
}

func (d *surveyDriver) SetText(context.Context, string, string, string) error { return nil }
func (d *surveyDriver) Click(context.Context, string, string) error           { return nil }

func (d *surveyDriver) SelectTab(_ context.Context, _, _, tab string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tab = tab
	return nil
}

func (d *surveyDriver) SelectComboItem(context.Context, string, string, string) error { return nil }
func (d *surveyDriver) IsChecked(context.Context, string, string) (bool, error)       { return true, nil }
func (d *surveyDriver) Uncheck(context.Context, string, string) error                 { return nil }
func (d *surveyDriver) WindowExists(context.Context, string) (bool, error)            { return false, nil }

func (d *surveyDriver) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

type mockPoles struct{ mock.Mock }

func (m *mockPoles) QueryPoleCoordinates(ctx context.Context, mjd string) (domain.PoleLookup, error) {
	args := m.Called(ctx, mjd)
	return args.Get(0).(domain.PoleLookup), args.Error(1)
}

const expectedReport = `Recalculation Report

Site Name:  Zvenigorod
Site Code:  ZVG
Calculation Date:  2026-03-14
Gravity_eff:  980000.10 µGal
Standard Deviation:  1.12 µGal
Vertical Gradient:  0.00 µGal/cm
Effective Height:  85.92 cm
Setup Height:  12.40 cm
Height_mod:  7.08 cm
Factory Height:  80.60 cm

+---------+------------------+------+-------+-----------+------+---------+
| Azimuth |  Start DateTime  | Sets | Drops |   g_eff   |  sd  | h_setup |
+---------+------------------+------+-------+-----------+------+---------+
|  north  | 2017-01-20 10:15 |  25  |  100  | 980000.12 | 1.00 |  12.35  |
|  south  | 2017-01-21 09:20 |  24  |   98  | 980000.08 | 2.00 |  12.45  |
|  result |                  |      |       | 980000.10 | 1.12 |  12.40  |
+---------+------------------+------+-------+-----------+------+---------+

Azimuth Difference (N-S):  0.04 µGal`

func TestSurvey_EndToEnd(t *testing.T) {
	// Given
	dir := newSurvey(t)
	require.NoError(t, os.WriteFile(ProjectFile(dir, domain.AzimuthNorth), fg5File(1484907330, 24, 25), 0o644))
	require.NoError(t, os.WriteFile(ProjectFile(dir, domain.AzimuthSouth), fg5File(1484990430, 23, 24), 0o644))

	driver := &surveyDriver{stations: map[string]station{
		"north": {setupHeight: "12.35", drops: "100", gravity: "980000.12", sd: "1.00"},
		"south": {setupHeight: "12.45", drops: "98", gravity: "980000.08", sd: "2.00"},
	}}
	poles := new(mockPoles)
	poles.On("QueryPoleCoordinates", mock.Anything, "57773").Return(domain.PoleLookup{
		Status:      domain.LookupResolved,
		Coordinates: domain.PoleCoordinates{XPole: "0.0523", YPole: "0.301", Bulletin: domain.BulletinEOP14C04},
	}, nil).Once()
	poles.On("QueryPoleCoordinates", mock.Anything, "57774").Return(domain.PoleLookup{
		Status:      domain.LookupUnavailable,
		Coordinates: domain.PoleCoordinates{Bulletin: domain.BulletinDefault},
		Reason:      "eop service unreachable",
	}, nil).Once()

	orchestrator := workflow.NewOrchestrator(
		driver,
		gui.LayoutRussian,
		gui.Application{Binary: "g9.exe", ProcessName: "g9.exe"},
		projectfile.NewExtractor(),
		poles,
		workflow.DefaultRunnerConfig(),
	)
	runner := newTestRunner(orchestrator, projectlog.NewStore(), Settings{Heights: testHeights, WriteYAML: true})

	// When
	summary, err := runner.Run(context.Background(), dir)

	// Then
	require.NoError(t, err)
	poles.AssertExpectations(t)
	assert.Equal(t, []string{"north", "south"}, driver.launches)

	report, err := os.ReadFile(summary.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, expectedReport, string(report))
	assert.FileExists(t, summary.YAMLPath)

	northLog, err := os.ReadFile(filepath.Join(dir, "north", "north.project.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(northLog), "Bulletin:  EOP 14 C04 (IAU2000)\n")
	assert.Contains(t, string(northLog), "Effective Height:  85.87 cm\n")

	southLog, err := os.ReadFile(filepath.Join(dir, "south", "south.project.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(southLog), "MJD:  57774\nBulletin:  Default\nMeasurement Start:  2017-01-21 09:20\n")
}
