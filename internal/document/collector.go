package document

// Named is the constraint for elements a Collector can hold.
type Named interface {
	Name() string
	HasConfig() bool
}

// Collector is an insertion-ordered collection of elements keyed by
// their names. Adding an element under an existing name replaces it
// without disturbing the original position.
type Collector[T Named] struct {
	order []string
	items map[string]T
}

// NewCollector returns an empty collector.
func NewCollector[T Named]() *Collector[T] {
	return &Collector[T]{items: make(map[string]T)}
}

// Add includes the element, keyed by its own name.
func (c *Collector[T]) Add(v T) {
	name := v.Name()
	if _, ok := c.items[name]; !ok {
		c.order = append(c.order, name)
	}

	c.items[name] = v
}

// Get returns the element stored under the name.
func (c *Collector[T]) Get(name string) (T, bool) {
	v, ok := c.items[name]
	return v, ok
}

// Has reports whether an element is stored under the name.
func (c *Collector[T]) Has(name string) bool {
	_, ok := c.items[name]
	return ok
}

// Len returns the number of stored elements.
func (c *Collector[T]) Len() int { return len(c.order) }

// Names returns the element names in insertion order.
func (c *Collector[T]) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)

	return out
}

// All returns the elements in insertion order.
func (c *Collector[T]) All() []T {
	out := make([]T, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.items[name])
	}

	return out
}

// Registered returns the subset of elements carrying a pragma block, in
// insertion order. The view is derived on each call, not stored.
func (c *Collector[T]) Registered() []T {
	var out []T
	for _, name := range c.order {
		if v := c.items[name]; v.HasConfig() {
			out = append(out, v)
		}
	}

	return out
}
