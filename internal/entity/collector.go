package entity

import "sync"

// ============================================================
// Collector
// ============================================================

// Collector gathers constructed entities for bulk inspection while enabled.
// Items keep their concrete kind once the kind's constructor has called
// Entity.Collect. Adds from concurrent constructors are serialised.
type Collector struct {
	mu      sync.Mutex
	enabled bool
	items   []Instance
}

// NewCollector returns an enabled collector.
func NewCollector() *Collector {
	return &Collector{enabled: true}
}

// SetEnabled switches collection on or off. Either way the collected
// entities are dropped.
func (c *Collector) SetEnabled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.enabled = on
	c.items = nil
}

func (c *Collector) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Add appends inst when collection is enabled.
func (c *Collector) Add(inst Instance) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	c.items = append(c.items, inst)
}

// replace swaps the item sharing inst's base entity for inst. The search
// runs from the tail, where a freshly built entity sits.
func (c *Collector) replace(inst Instance) {
	c.mu.Lock()
	defer c.mu.Unlock()

	base := inst.Base()
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i].Base() == base {
			c.items[i] = inst
			return
		}
	}
}

// Items returns the collected entities in insertion order.
func (c *Collector) Items() []Instance {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Instance, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
