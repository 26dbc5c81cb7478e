package plan

// ComponentDescriptor describes one logical product component. Any of the
// fields may be empty; together they form the alias set of the component.
type ComponentDescriptor struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Component string `json:"component,omitempty"`
}

// Names returns the non-empty identifying fields in id, name, component order.
func (d ComponentDescriptor) Names() []string {
	out := make([]string, 0, 3)
	for _, s := range []string{d.ID, d.Name, d.Component} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Metadata is the product metadata document.
type Metadata struct {
	Components []ComponentDescriptor `json:"components"`
}

// Descriptors returns the component list, or nil for nil metadata.
func (m *Metadata) Descriptors() []ComponentDescriptor {
	if m == nil {
		return nil
	}
	return m.Components
}
