package domain

type AzimuthStatus string

const (
	AzimuthStatusProcessed AzimuthStatus = "processed"
	AzimuthStatusSkipped   AzimuthStatus = "skipped"
	AzimuthStatusFailed    AzimuthStatus = "failed"
)

// AzimuthOutcome records what happened to one azimuth during a survey run.
type AzimuthOutcome struct {
	Azimuth Azimuth
	Status  AzimuthStatus
	Result  *AzimuthResult
	Error   *string
}
