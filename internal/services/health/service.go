package health

import "resume-analyzer/internal/analysis"

// Status is the health payload.
type Status struct {
	OK   bool   `json:"ok"`
	Mode string `json:"mode"`
}

// Service reports liveness and which analysis mode the process runs in.
type Service struct {
	mode analysis.Mode
}

// NewService constructs a new health service.
func NewService(mode analysis.Mode) *Service {
	if mode == "" {
		mode = analysis.ModeDemo
	}
	return &Service{mode: mode}
}

// Status returns a simple health payload.
func (s *Service) Status() Status {
	return Status{OK: true, Mode: string(s.mode)}
}
