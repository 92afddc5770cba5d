package observability

import "sync"

// Metrics provides basic in-memory counters for bot activity.
type Metrics struct {
	mu         sync.Mutex
	updates    map[string]int64
	triggers   map[string]int64
	deliveries map[string]int64
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Updates    map[string]int64 `json:"updates"`
	Triggers   map[string]int64 `json:"triggers"`
	Deliveries map[string]int64 `json:"deliveries"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		updates:    make(map[string]int64),
		triggers:   make(map[string]int64),
		deliveries: make(map[string]int64),
	}
}

// RecordUpdate increments the counter for one inbound update kind.
func (m *Metrics) RecordUpdate(kind string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[kind]++
}

// RecordTrigger increments the counter for a matched trigger.
func (m *Metrics) RecordTrigger(name string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.triggers[name]++
}

// RecordDelivery increments the outcome counter for one outbound delivery attempt.
func (m *Metrics) RecordDelivery(ok bool) {
	if m == nil {
		return
	}
	key := "ok"
	if !ok {
		key = "failed"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries[key]++
}

// Stats returns a copy of the current counters.
func (m *Metrics) Stats() Snapshot {
	snap := Snapshot{
		Updates:    make(map[string]int64),
		Triggers:   make(map[string]int64),
		Deliveries: make(map[string]int64),
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.updates {
		snap.Updates[k] = v
	}
	for k, v := range m.triggers {
		snap.Triggers[k] = v
	}
	for k, v := range m.deliveries {
		snap.Deliveries[k] = v
	}
	return snap
}
