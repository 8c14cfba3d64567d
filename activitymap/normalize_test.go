package activitymap_test

import (
	"testing"
	"time"

	canvas "github.com/goliatone/go-auth-canvas"
	"github.com/goliatone/go-auth-canvas/activitymap"
)

func TestNormalizeDefaults(t *testing.T) {
	t.Parallel()

	ts := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	event := canvas.ActivityEvent{
		ID:             "evt-1",
		EventType:      canvas.ActivityEventCanvasSuccess,
		UserID:         "000456",
		OrganizationID: "000123",
		Metadata: map[string]any{
			"profile_id": "https://login.salesforce.com/id/000123/000456",
		},
		OccurredAt: ts,
	}

	out := activitymap.Normalize(event)

	if out.ActorID != "000456" {
		t.Fatalf("expected actor_id 000456, got %q", out.ActorID)
	}
	if out.Verb != string(canvas.ActivityEventCanvasSuccess) {
		t.Fatalf("expected verb %q, got %q", canvas.ActivityEventCanvasSuccess, out.Verb)
	}
	if out.ObjectType != "organization" {
		t.Fatalf("expected object_type organization, got %q", out.ObjectType)
	}
	if out.ObjectID != "000123" {
		t.Fatalf("expected object_id 000123, got %q", out.ObjectID)
	}
	if out.Channel != "canvas" {
		t.Fatalf("expected channel canvas, got %q", out.Channel)
	}
	if !out.OccurredAt.Equal(ts) {
		t.Fatalf("expected occurred_at %v, got %v", ts, out.OccurredAt)
	}

	if out.Metadata["profile_id"] != "https://login.salesforce.com/id/000123/000456" {
		t.Fatalf("expected metadata profile_id, got %#v", out.Metadata["profile_id"])
	}
	if out.Metadata[activitymap.MetadataKeyEventID] != "evt-1" {
		t.Fatalf("expected metadata event_id evt-1, got %#v", out.Metadata[activitymap.MetadataKeyEventID])
	}
	if _, ok := out.Metadata[activitymap.MetadataKeyTextCode]; ok {
		t.Fatalf("expected no text_code on success, got %#v", out.Metadata[activitymap.MetadataKeyTextCode])
	}

	if len(event.Metadata) != 1 {
		t.Fatalf("expected source metadata to remain unchanged, got %+v", event.Metadata)
	}
}

func TestNormalizeRejection(t *testing.T) {
	t.Parallel()

	event := canvas.ActivityEvent{
		EventType: canvas.ActivityEventCanvasRejected,
		TextCode:  canvas.TextCodeSignatureMismatch,
		Reason:    "Signed request signature mismatch",
		Metadata: map[string]any{
			activitymap.MetadataKeyReason: "existing",
		},
	}

	out := activitymap.Normalize(event)

	if out.ActorID != "anonymous" {
		t.Fatalf("expected actor_id anonymous, got %q", out.ActorID)
	}
	if out.ObjectID != "" {
		t.Fatalf("expected empty object_id, got %q", out.ObjectID)
	}
	if out.Metadata[activitymap.MetadataKeyTextCode] != canvas.TextCodeSignatureMismatch {
		t.Fatalf("expected text_code %q, got %#v", canvas.TextCodeSignatureMismatch, out.Metadata[activitymap.MetadataKeyTextCode])
	}
	if out.Metadata[activitymap.MetadataKeyReason] != "existing" {
		t.Fatalf("expected existing reason preserved, got %#v", out.Metadata[activitymap.MetadataKeyReason])
	}
	if out.OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be set when input is zero")
	}
}

func TestNormalizeOptionOverrides(t *testing.T) {
	t.Parallel()

	event := canvas.ActivityEvent{
		EventType:      canvas.ActivityEventCanvasSuccess,
		UserID:         "000456",
		OrganizationID: "000123",
		Metadata: map[string]any{
			"record_id": "001xx1",
		},
	}

	out := activitymap.Normalize(
		event,
		activitymap.WithDefaultChannel("crm"),
		activitymap.WithDefaultObjectType("account"),
		activitymap.WithObjectIDResolver(func(e canvas.ActivityEvent) string {
			if v, ok := e.Metadata["record_id"].(string); ok {
				return v
			}
			return ""
		}),
	)

	if out.Channel != "crm" {
		t.Fatalf("expected channel crm, got %q", out.Channel)
	}
	if out.ObjectType != "account" {
		t.Fatalf("expected object_type account, got %q", out.ObjectType)
	}
	if out.ObjectID != "001xx1" {
		t.Fatalf("expected object_id 001xx1, got %q", out.ObjectID)
	}
	if out.Metadata[activitymap.MetadataKeyOrganizationID] != "000123" {
		t.Fatalf("expected organization_id kept in metadata, got %#v", out.Metadata[activitymap.MetadataKeyOrganizationID])
	}
}

func TestNormalizeActorFallbackChain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		event  canvas.ActivityEvent
		opts   []activitymap.Option
		expect string
	}{
		{
			name:   "uses user id when present",
			event:  canvas.ActivityEvent{UserID: "user-1"},
			expect: "user-1",
		},
		{
			name:   "uses default fallback when user missing",
			event:  canvas.ActivityEvent{},
			expect: "anonymous",
		},
		{
			name:   "uses configured fallback when user missing",
			event:  canvas.ActivityEvent{},
			opts:   []activitymap.Option{activitymap.WithActorFallback("canvas-gateway")},
			expect: "canvas-gateway",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := activitymap.Normalize(tc.event, tc.opts...)
			if out.ActorID != tc.expect {
				t.Fatalf("expected actor_id %q, got %q", tc.expect, out.ActorID)
			}
		})
	}
}
