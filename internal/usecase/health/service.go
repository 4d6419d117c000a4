package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
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
	Status   Status                 `json:"status"`
	Checks   map[string]CheckResult `json:"checks"`
	Sources  int                    `json:"sources"`
	Embedded int                    `json:"embedded"`
}

// Service coordinates health checks.
type Service struct {
	catalog   CatalogInfo
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil.
func New(catalog CatalogInfo, embedding EmbeddingChecker) *Service {
	return &Service{catalog: catalog, embedding: embedding}
}

// Check runs health checks against all components. A catalog with zero
// embedded sources counts as a failing check: nothing would ever rank.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.catalog.EmbeddedCount() > 0 {
		checks["catalog"] = CheckOK
	} else {
		checks["catalog"] = CheckError
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{
		Status:   status,
		Checks:   checks,
		Sources:  s.catalog.Len(),
		Embedded: s.catalog.EmbeddedCount(),
	}
}
