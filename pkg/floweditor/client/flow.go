package client

import (
	"time"

	"github.com/randalmurphal/floweditor/pkg/floweditor"
)

// FlowStatus is the lifecycle state of a saved flow definition.
type FlowStatus string

const (
	FlowDraft    FlowStatus = "draft"
	FlowActive   FlowStatus = "active"
	FlowArchived FlowStatus = "archived"
)

// ScheduleSettings configures time-based triggering of a flow.
type ScheduleSettings struct {
	Enabled bool   `json:"enabled"`
	Cron    string `json:"cron,omitempty"`
}

// WebhookSettings configures webhook triggering of a flow.
type WebhookSettings struct {
	Enabled bool `json:"enabled"`
	// RequireSecret demands the shared-secret header on trigger calls.
	RequireSecret bool `json:"requireSecret,omitempty"`
}

// Flow is a saved flow definition as the API stores it: metadata plus
// the nodes in execution-chain form. The editor never works on this
// shape directly — it converts Nodes with ChainToGraph on load and
// writes back GraphToChain output on save.
type Flow struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Status      FlowStatus `json:"status,omitempty"`
	Version     int        `json:"version,omitempty"`

	Schedule *ScheduleSettings `json:"schedule,omitempty"`
	Webhook  *WebhookSettings  `json:"webhook,omitempty"`

	// Nodes is the execution chain, exactly as GraphToChain emits it.
	Nodes floweditor.Chain `json:"nodes"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}
