package domain

import "time"

// RenderRecord is one entry of the generation ledger. It carries metadata
// about an output file only; plan field values are never recorded.
type RenderRecord struct {
	ID              string
	CreatedAt       time.Time
	Target          RenderTarget
	Format          PlanFormat
	OutputPath      string
	OutputBytes     int
	Digest          string
	MissingSections []string
	Status          RenderStatus
	Duration        time.Duration
}
