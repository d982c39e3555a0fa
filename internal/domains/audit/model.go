package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"gallery-backend/internal/shared"
)

// Action is the kind of mutation an Entry records.
type Action string

const (
	ActionCreate     Action = "create"
	ActionEdit       Action = "edit"
	ActionDelete     Action = "delete"
	ActionPublish    Action = "publish"
	ActionUnpublish  Action = "unpublish"
	ActionLink       Action = "link"
	ActionUnlink     Action = "unlink"
	ActionSort       Action = "sort"
	ActionRevalidate Action = "revalidate"
)

// Entity types that show up in the ledger.
const (
	EntityYear       = "year"
	EntityLocation   = "location"
	EntityCollection = "collection"
	EntityAsset      = "asset"
)

// ValidActions is used by filter validation.
var ValidActions = []Action{
	ActionCreate, ActionEdit, ActionDelete,
	ActionPublish, ActionUnpublish,
	ActionLink, ActionUnlink, ActionSort, ActionRevalidate,
}

// ValidEntityTypes is used by filter validation.
var ValidEntityTypes = []string{EntityYear, EntityLocation, EntityCollection, EntityAsset}

// Entry is one row of the append-only audit ledger. Entries are written in
// the same transaction as the mutation they describe and are never updated
// or deleted here; only the external retention-purge job may remove them.
type Entry struct {
	ID         uuid.UUID       `json:"id"`
	Actor      string          `json:"actor"`
	ActorType  string          `json:"actor_type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Action     Action          `json:"action"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewEntry builds a ledger entry for a mutation. The payload is marshaled
// here; a payload that cannot be marshaled is recorded as null rather than
// failing the mutation it describes.
func NewEntry(actor shared.Actor, entityType, entityID string, action Action, payload interface{}) *Entry {
	var raw json.RawMessage
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			raw = data
		}
	}

	return &Entry{
		ID:         uuid.New(),
		Actor:      actor.ID,
		ActorType:  actor.Type,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Payload:    raw,
		CreatedAt:  time.Now().UTC(),
	}
}
