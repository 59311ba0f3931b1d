package component

// Appearance is what the debug renderer draws for an agent.
type Appearance struct {
	Name   string
	Color  string
	Radius float64
}

var AppearanceComponent = NewComponent[Appearance]()
