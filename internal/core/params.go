package core

// ParamType names the value kind of a Parameter.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeFloat  ParamType = "float"
	ParamTypeString ParamType = "string"
)

// Parameter is one setting of a running world, rendered as text. Key matches
// the key its Factory accepts.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for the side panel.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot is the grouped settings of a world at one moment.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Values flattens the snapshot into the key/value form a Factory accepts,
// so a world can be rebuilt with the same settings.
func (s ParameterSnapshot) Values() map[string]string {
	out := map[string]string{}
	for _, g := range s.Groups {
		for _, p := range g.Params {
			out[p.Key] = p.Value
		}
	}
	return out
}

// ParameterProvider exposes a snapshot of settings.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}
