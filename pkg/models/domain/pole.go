package domain

type Bulletin string

const (
	BulletinEOP14C04 Bulletin = "EOP 14 C04 (IAU2000)"
	BulletinA        Bulletin = "Bulletin A"
	BulletinDefault  Bulletin = "Default"
)

// PoleCoordinates are polar motion values in arcseconds, kept as the decimal
// strings written into the processing form.
type PoleCoordinates struct {
	XPole    string
	YPole    string
	Bulletin Bulletin
}

type LookupStatus string

const (
	LookupResolved    LookupStatus = "resolved"
	LookupPartial     LookupStatus = "partial"
	LookupUnavailable LookupStatus = "unavailable"
)

// PoleLookup is the outcome of a polar motion query.
// Coordinates are only meaningful when Status is LookupResolved; a partial
// result carries whichever component was returned.
type PoleLookup struct {
	Status      LookupStatus
	Coordinates PoleCoordinates
	Reason      string
}

func (l PoleLookup) Resolved() bool {
	return l.Status == LookupResolved
}
