package repair

// RepairAction categorizes how a field was changed.
type RepairAction string

const (
	// ActionClamped indicates a value was limited to an allowed range.
	ActionClamped RepairAction = "clamped"

	// ActionDefaulted indicates an absent field received its default.
	ActionDefaulted RepairAction = "defaulted"

	// ActionNormalised indicates a present value was rewritten to the
	// canonical/renormalized value.
	ActionNormalised RepairAction = "normalised"
)

// RepairRecord is one field-level audit entry. Immutable once created;
// exactly one record is emitted per field actually changed. No-op changes
// produce no record.
type RepairRecord struct {
	Field     string       `json:"field"` // dotted path, e.g. "strength.mean"
	Action    RepairAction `json:"action"`
	FromValue any          `json:"from_value"` // nil when the field was absent
	ToValue   any          `json:"to_value"`
	Reason    string       `json:"reason"`
	EdgeID    string       `json:"edge_id,omitempty"`
	EdgeFrom  string       `json:"edge_from,omitempty"`
	EdgeTo    string       `json:"edge_to,omitempty"`
}

// FieldDeletionEvent records a repair stage stripping a field from a node's
// data map, e.g. reclassifying a factor from controllable to external
// removes value, factor_type and uncertainty_drivers.
type FieldDeletionEvent struct {
	Stage  string `json:"stage"`
	NodeID string `json:"node_id"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
