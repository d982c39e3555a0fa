package audit

import "context"

// Service is the read side of the ledger. Writes happen inside other
// domains' transactions through Repository.Append.
type Service interface {
	// Query returns a validated, paginated page of the ledger.
	Query(ctx context.Context, req QueryRequest) (*QueryResult, error)

	// PreviewRetention reports what a purge at the given horizon would
	// remove, without deleting anything.
	PreviewRetention(ctx context.Context, req RetentionPreviewRequest) (*RetentionPreview, error)
}
