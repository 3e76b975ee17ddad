package ports

import "go.trai.ch/drift/internal/core/domain"

// Reporter renders the result of an update check.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	Report(report domain.Report) error
}
