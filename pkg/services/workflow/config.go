package workflow

import "time"

type RunnerConfig struct {
	Settle            time.Duration
	InitialWait       time.Duration
	PollInterval      time.Duration
	FinalWait         time.Duration
	CompletionTimeout time.Duration
	TransferHeight    string
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Settle:            1 * time.Second,
		InitialWait:       5 * time.Second,
		PollInterval:      3 * time.Second,
		FinalWait:         5 * time.Second,
		CompletionTimeout: 4 * time.Hour,
		TransferHeight:    "130",
	}
}
