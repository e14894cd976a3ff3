package tablets

// Tablet is a named expression, callable from other expressions as a function
// of x.
type Tablet struct {
	Name string
	Root *Node
}

func (t Tablet) String() string {
	return t.Name + "(x)=" + t.Root.String()
}

// Registry is an ordered list of tablets. Names are not deduplicated; when a
// name is defined more than once, Lookup finds the earliest definition.
//
// Adding tablets while a Context is evaluating with the same registry is a
// data race.
type Registry struct {
	tablets []Tablet
}

// NewRegistry creates a registry holding the given tablets in order.
func NewRegistry(tablets ...Tablet) *Registry {
	return &Registry{tablets: append([]Tablet(nil), tablets...)}
}

// Add appends tablets to the registry.
func (r *Registry) Add(tablets ...Tablet) {
	r.tablets = append(r.tablets, tablets...)
}

// Define appends a tablet. Returns r for chaining.
func (r *Registry) Define(name string, root *Node) *Registry {
	r.Add(Tablet{Name: name, Root: root})
	return r
}

// Lookup finds the first tablet with the given name.
func (r *Registry) Lookup(name string) (*Node, bool) {
	if r == nil {
		return nil, false
	}
	for _, t := range r.tablets {
		if t.Name == name {
			return t.Root, true
		}
	}
	return nil, false
}

// Len returns the number of tablets, counting repeated names.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.tablets)
}

// Tablets returns a copy of the tablets in definition order.
func (r *Registry) Tablets() []Tablet {
	if r == nil {
		return nil
	}
	return append([]Tablet(nil), r.tablets...)
}

// Names returns the distinct tablet names in order of first definition.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool, len(r.tablets))
	names := make([]string, 0, len(r.tablets))
	for _, t := range r.tablets {
		if !seen[t.Name] {
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	return names
}
