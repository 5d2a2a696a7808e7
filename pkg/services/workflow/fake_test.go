package workflow

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/de-tools/geff/pkg/models/domain"
	"github.com/de-tools/geff/pkg/services/gui"
	"github.com/stretchr/testify/mock"
)

// fakeDriver is a scripted stand-in for the processing application.
type fakeDriver struct {
	mu sync.Mutex

	calls    []string
	controls []string
	texts    map[string]string

	peakDetection  bool
	overrideDialog bool

	counterStart int
	counterReads int
	counterText  func(read int) string

	realSleep bool
	sleeps    []time.Duration
	failOn    map[string]error

	launched   []string
	terminated int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		controls: []string{"mnu0", "tbar0", "ico0", "ico1", "ico2", "ico3", "btn0", "btn1", "btn2", "ico4", "ico5", "ico6", "btn3"},
		texts: map[string]string{
			"frmSetup/txt0":  "Zvenigorod",
			"frmSetup/txt1":  "ZVG",
			"frmSetup/txt7":  "12.35",
			"frmState/txt42": "981561234.56",
			"frmState/txt43": "1.23",
		},
		counterStart: 22,
	}
}

func (f *fakeDriver) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failOn[call]
}

func (f *fakeDriver) Launch(_ context.Context, binary string, args ...string) error {
	f.launched = append(f.launched, binary)
	return f.record(fmt.Sprintf("launch %s %v", binary, args))
}

func (f *fakeDriver) Terminate(_ context.Context, processName string) error {
	f.terminated++
	return f.record("terminate " + processName)
}

func (f *fakeDriver) ListControls(_ context.Context, window string) ([]string, error) {
	return f.controls, f.record("list " + window)
}

func (f *fakeDriver) GetText(ctx context.Context, window, control string) (string, error) {
	key := window + "/" + control
	if err := f.record("get " + key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if key == "frmState/txt32" {
		f.mu.Lock()
		defer f.mu.Unlock()
		read := f.counterReads
		f.counterReads++
		if f.counterText != nil {
			return f.counterText(read), nil
		}
		return strconv.Itoa(f.counterStart + read), nil
	}
	if key == "frmSetup/txt1" && f.onAcquisitionTab() {
		return "100", nil
	}
	return f.texts[key], nil
}

func (f *fakeDriver) onAcquisitionTab() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		switch f.calls[i] {
		case "tab frmSetup ptl0 ptabAcquisition":
			return true
		case "tab frmSetup ptl0 ptabControl":
			return false
		}
	}
	return false
}

func (f *fakeDriver) SetText(_ context.Context, window, control, value string) error {
	return f.record(fmt.Sprintf("set %s/%s=%s", window, control, value))
}

func (f *fakeDriver) Click(_ context.Context, window, control string) error {
	return f.record(fmt.Sprintf("click %s/%s", window, control))
}

func (f *fakeDriver) SelectTab(_ context.Context, window, tabGroup, tab string) error {
	return f.record(fmt.Sprintf("tab %s %s %s", window, tabGroup, tab))
}

func (f *fakeDriver) SelectComboItem(_ context.Context, window, control, item string) error {
	return f.record(fmt.Sprintf("combo %s/%s=%s", window, control, item))
}

func (f *fakeDriver) IsChecked(_ context.Context, window, control string) (bool, error) {
	return f.peakDetection, f.record(fmt.Sprintf("checked? %s/%s", window, control))
}

func (f *fakeDriver) Uncheck(_ context.Context, window, control string) error {
	f.peakDetection = false
	return f.record(fmt.Sprintf("uncheck %s/%s", window, control))
}

func (f *fakeDriver) WindowExists(_ context.Context, window string) (bool, error) {
	return f.overrideDialog, f.record("exists? " + window)
}

func (f *fakeDriver) Sleep(ctx context.Context, d time.Duration) error {
	f.mu.Lock()
	f.sleeps = append(f.sleeps, d)
	f.mu.Unlock()
	if f.realSleep {
		return gui.Sleep(ctx, d)
	}
	return ctx.Err()
}

func (f *fakeDriver) callsWithPrefix(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c)
		}
	}
	return out
}

type fakeMetadata struct {
	times  domain.TimeValues
	counts domain.SetCounts
	err    error
}

func (f fakeMetadata) ExtractTimestamp(string) (domain.TimeValues, error) {
	return f.times, f.err
}

func (f fakeMetadata) ExtractSetCounts(string) (domain.SetCounts, error) {
	return f.counts, f.err
}

type mockPoles struct{ mock.Mock }

func (m *mockPoles) QueryPoleCoordinates(ctx context.Context, mjd string) (domain.PoleLookup, error) {
	args := m.Called(ctx, mjd)
	return args.Get(0).(domain.PoleLookup), args.Error(1)
}
