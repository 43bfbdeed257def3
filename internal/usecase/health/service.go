package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	index  IndexReader
	parser ParserChecker
}

// New creates a Service. parser can be nil when the LLM fallback is disabled.
func New(db DBPinger, index IndexReader, parser ParserChecker) *Service {
	return &Service{db: db, index: index, parser: parser}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
	} else {
		checks["database"] = CheckOK
	}

	ready, err := s.index.IndexReady(ctx)
	if err != nil || !ready {
		checks["index"] = CheckError
	} else {
		checks["index"] = CheckOK
	}

	if s.parser != nil {
		if err := s.parser.HealthCheck(ctx); err != nil {
			checks["parser"] = CheckError
		} else {
			checks["parser"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
