package health

import "context"

// DBPinger checks storage availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexReader checks that the directory search index exists.
type IndexReader interface {
	IndexReady(ctx context.Context) (bool, error)
}

// ParserChecker checks LLM parser provider availability.
type ParserChecker interface {
	HealthCheck(ctx context.Context) error
}
