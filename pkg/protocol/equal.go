package protocol

// Structural equality for the payloads that go through diff-based
// broadcast suppression. Explicit field comparison keeps the
// suppression decision auditable; no generic deep-equal.

// Equaler is implemented by payloads eligible for suppression.
type Equaler interface {
	Message
	Equal(Message) bool
}

func (m HeatmapUpdate) Equal(other Message) bool {
	o, ok := other.(HeatmapUpdate)
	return ok && m == o
}

func (m HighlightingUpdate) Equal(other Message) bool {
	o, ok := other.(HighlightingUpdate)
	return ok && m == o
}

func (m AllHighlightsReset) Equal(other Message) bool {
	_, ok := other.(AllHighlightsReset)
	return ok
}

func (m UserPositions) Equal(other Message) bool {
	o, ok := other.(UserPositions)
	if !ok || m.Camera != o.Camera {
		return false
	}
	return posesEqual(m.Controller1, o.Controller1) && posesEqual(m.Controller2, o.Controller2)
}

func posesEqual(a, b *Pose) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (m Ping) Equal(other Message) bool {
	o, ok := other.(Ping)
	return ok && m == o
}

func (m SpectatingUpdate) Equal(other Message) bool {
	o, ok := other.(SpectatingUpdate)
	return ok && m == o
}

func (m RestructureCreate) Equal(other Message) bool {
	o, ok := other.(RestructureCreate)
	return ok && m == o
}

func (m RestructureRename) Equal(other Message) bool {
	o, ok := other.(RestructureRename)
	return ok && m == o
}

func (m RestructureDelete) Equal(other Message) bool {
	o, ok := other.(RestructureDelete)
	return ok && m == o
}

func (m TimestampUpdate) Equal(other Message) bool {
	o, ok := other.(TimestampUpdate)
	return ok && m == o
}
