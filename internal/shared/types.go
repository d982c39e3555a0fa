package shared

// Actor is the resolved identity behind a mutating call. Authentication
// itself happens upstream; by the time the core runs, the actor is a fact.
type Actor struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

const (
	ActorTypeUser   = "user"
	ActorTypeSystem = "system"
)

// SystemActor is used by the worker and CLI tooling.
var SystemActor = Actor{ID: "system", Type: ActorTypeSystem}

// Asynq task types.
const (
	TypeRevalidateTag   = "cache:revalidate_tag"
	TypeRetentionReport = "audit:retention_report"
)

// RevalidateTagPayload is the payload for cache:revalidate_tag tasks.
type RevalidateTagPayload struct {
	Tag string `json:"tag"`
}

// RetentionReportPayload is the payload for audit:retention_report tasks.
type RetentionReportPayload struct {
	RetentionDays int `json:"retention_days"`
}
