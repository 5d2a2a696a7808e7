package gui

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Layout names the windows and controls of one version of the processing
// application. The toolbar buttons have no stable names and are found by
// their position relative to ToolbarAnchor in the control listing.
type Layout struct {
	Version string

	MainWindow     string
	SetupForm      string
	TidalSetupForm string
	OceanLoadForm  string
	OverrideDialog string
	StateWindow    string

	SetupConfirmButton string
	Controls           Controls

	ToolbarAnchor string
	SetupOffset   int
	GoOffset      int
	StopOffset    int
	AboutOffset   int
	// ButtonPrefix, when set, must prefix every resolved toolbar control.
	ButtonPrefix string
}

// Controls are the named controls used inside the forms of a layout.
type Controls struct {
	// Setup form, information tab.
	SiteName        string
	SiteCode        string
	SetupHeight     string
	NominalPressure string
	Gradient        string
	XPole           string
	YPole           string
	TransferHeight  string

	TabGroup       string
	AcquisitionTab string
	ControlTab     string

	// Setup form, acquisition tab.
	Drops string

	// Setup form, control tab.
	TidalModel        string
	TidalModelItem    string
	TidalSetup        string
	RunOceanLoad      string
	DialogOK          string
	AutoPeakDetection string

	OverrideConfirm string

	// State window.
	CompletedSets     string
	Gravity           string
	StandardDeviation string
}

var g9Controls = Controls{
	SiteName:          "txt0",
	SiteCode:          "txt1",
	SetupHeight:       "txt7",
	NominalPressure:   "btnSet",
	Gradient:          "txt6",
	XPole:             "txt8",
	YPole:             "txt9",
	TransferHeight:    "txt10",
	TabGroup:          "ptl0",
	AcquisitionTab:    "ptabAcquisition",
	ControlTab:        "ptabControl",
	Drops:             "txt1",
	TidalModel:        "cbo1",
	TidalModelItem:    "ETGTAB",
	TidalSetup:        "btnSetup1",
	RunOceanLoad:      "btnRunOceanLoad",
	DialogOK:          "btnOK",
	AutoPeakDetection: "chkAutoPeakDetection",
	OverrideConfirm:   "btnYes",
	CompletedSets:     "txt32",
	Gravity:           "txt42",
	StandardDeviation: "txt43",
}

// Buttons are the toolbar controls of the main window.
type Buttons struct {
	Setup string
	Go    string
	Stop  string
	About string
}

var (
	// LayoutRussian matches the localized g9 build with frm* forms.
	LayoutRussian = Layout{
		Version:            "g9-ru",
		MainWindow:         "*Micro-g*",
		SetupForm:          "frmSetup",
		TidalSetupForm:     "frmETGTABSetup",
		OceanLoadForm:      "frmOceanLoad",
		OverrideDialog:     "frmOverrideDialog",
		StateWindow:        "frmState",
		SetupConfirmButton: "btn\u041e\u041a", // "btnОК", Cyrillic
		Controls:           g9Controls,
		ToolbarAnchor:      "tbar0",
		SetupOffset:        5,
		GoOffset:           6,
		StopOffset:         7,
		AboutOffset:        11,
	}

	// LayoutEnglish matches the English g9 build with dlg* dialogs.
	LayoutEnglish = Layout{
		Version:            "g9-en",
		MainWindow:         "*Micro-g*",
		SetupForm:          "dlgSetup",
		TidalSetupForm:     "dlgETGTABSetup",
		OceanLoadForm:      "dlgOceanLoad",
		OverrideDialog:     "dlgOverrideDialog",
		StateWindow:        "frmState",
		SetupConfirmButton: "btnOK",
		Controls:           g9Controls,
		ToolbarAnchor:      "tbar0",
		SetupOffset:        5,
		GoOffset:           6,
		StopOffset:         7,
		AboutOffset:        11,
	}
)

var layouts = map[string]Layout{
	LayoutRussian.Version: LayoutRussian,
	LayoutEnglish.Version: LayoutEnglish,
}

// LookupLayout returns a known layout by version.
func LookupLayout(version string) (Layout, error) {
	l, ok := layouts[version]
	if !ok {
		known := make([]string, 0, len(layouts))
		for v := range layouts {
			known = append(known, v)
		}
		slices.Sort(known)
		return Layout{}, fmt.Errorf("unknown gui layout %q (known: %s)", version, strings.Join(known, ", "))
	}
	return l, nil
}

// LayoutError reports a control listing that does not fit the layout.
type LayoutError struct {
	Version string
	Window  string
	Reason  string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("gui layout %s does not match window %q: %s", e.Version, e.Window, e.Reason)
}

// ResolveButtons locates the toolbar buttons from the current control listing
// of the main window.
func (l Layout) ResolveButtons(ctx context.Context, d Driver) (Buttons, error) {
	controls, err := d.ListControls(ctx, l.MainWindow)
	if err != nil {
		return Buttons{}, fmt.Errorf("failed to list controls of %q: %w", l.MainWindow, err)
	}
	return l.ButtonsFrom(controls)
}

// ButtonsFrom resolves the toolbar buttons from a control listing.
func (l Layout) ButtonsFrom(controls []string) (Buttons, error) {
	anchor := -1
	for i, c := range controls {
		if c == l.ToolbarAnchor {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return Buttons{}, l.layoutError(fmt.Sprintf("anchor control %q not found among %d controls", l.ToolbarAnchor, len(controls)))
	}

	pick := func(name string, offset int) (string, error) {
		i := anchor + offset
		if i < 0 || i >= len(controls) {
			return "", l.layoutError(fmt.Sprintf("%s button at %s%+d is outside the listing of %d controls", name, l.ToolbarAnchor, offset, len(controls)))
		}
		c := controls[i]
		if c == "" || (l.ButtonPrefix != "" && !strings.HasPrefix(c, l.ButtonPrefix)) {
			return "", l.layoutError(fmt.Sprintf("%s button at %s%+d is %q", name, l.ToolbarAnchor, offset, c))
		}
		return c, nil
	}

	var b Buttons
	var err error
	if b.Setup, err = pick("setup", l.SetupOffset); err != nil {
		return Buttons{}, err
	}
	if b.Go, err = pick("go", l.GoOffset); err != nil {
		return Buttons{}, err
	}
	if b.Stop, err = pick("stop", l.StopOffset); err != nil {
		return Buttons{}, err
	}
	if b.About, err = pick("about", l.AboutOffset); err != nil {
		return Buttons{}, err
	}
	return b, nil
}

func (l Layout) layoutError(reason string) *LayoutError {
	return &LayoutError{Version: l.Version, Window: l.MainWindow, Reason: reason}
}
