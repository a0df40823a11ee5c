package analytics

import "context"

// Status holds row counts for the three backing tables.
type Status struct {
	CurrentCount    int64 `json:"current_count"`
	HistoricalCount int64 `json:"historical_count"`
	MetaCount       int64 `json:"meta_count"`
}

// Status counts rows in the current log, the historical log and the
// metadata table. Each count degrades to zero independently.
func (s *Service) Status(ctx context.Context) Status {
	var st Status

	if n, err := s.store.CountCurrent(ctx); err != nil {
		s.warn("status.current", err)
	} else {
		st.CurrentCount = n
	}

	if ok, err := s.store.HasHistory(ctx); err != nil {
		s.warn("status.history", err)
	} else if ok {
		if n, err := s.store.CountHistory(ctx); err != nil {
			s.warn("status.history", err)
		} else {
			st.HistoricalCount = n
		}
	}

	if n, err := s.store.CountMeta(ctx); err != nil {
		s.warn("status.meta", err)
	} else {
		st.MetaCount = n
	}

	return st
}
