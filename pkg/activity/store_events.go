package activity

import (
	"strings"
	"time"
)

// StoreEventInput describes the common fields for store lifecycle events.
type StoreEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	StoreID    string
	Type       string
	Namespace  string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildCommitEvent constructs a normalized activity event for a committed
// mutation. Type is the fully qualified mutation name.
func BuildCommitEvent(input StoreEventInput) Event {
	return buildStoreEvent("store.commit", "store.mutation", input)
}

// BuildDispatchEvent constructs a normalized activity event for a dispatched
// action. Type is the fully qualified action name.
func BuildDispatchEvent(input StoreEventInput) Event {
	return buildStoreEvent("store.dispatch", "store.action", input)
}

// BuildInstallEvent constructs an activity event describing a module tree
// being installed into a store.
func BuildInstallEvent(input StoreEventInput) Event {
	return buildStoreEvent("store.install", "store", input)
}

func buildStoreEvent(verb, objectType string, input StoreEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Namespace != "" {
		metadata = ensureMetadata(metadata)
		metadata["namespace"] = input.Namespace
	}

	// Caller identity may travel inside commit/dispatch metadata.
	if input.ActorID == "" {
		input.ActorID = metaString(metadata, "actor_id")
	}
	if input.UserID == "" {
		input.UserID = metaString(metadata, "user_id")
	}
	if input.TenantID == "" {
		input.TenantID = metaString(metadata, "tenant_id")
	}

	objectID := strings.TrimSpace(input.Type)
	if objectID == "" {
		objectID = strings.TrimSpace(input.StoreID)
	}
	if objectID == "" {
		objectID = objectType
	}

	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: objectType,
		ObjectID:   objectID,
		StoreID:    strings.TrimSpace(input.StoreID),
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}

func metaString(meta map[string]any, key string) string {
	if len(meta) == 0 {
		return ""
	}
	if value, ok := meta[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
