package services

import "time"

// SettlementOption configures the shared parts of a settlement component.
type SettlementOption func(*BaseService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) SettlementOption {
	return func(s *BaseService) {
		s.now = now
	}
}
