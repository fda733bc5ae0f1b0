package models

// NodeTypeDescriptor is the metadata store's view of one node type. The
// validation engine reads descriptors, it never writes them.
type NodeTypeDescriptor struct {
	NodeType    string               `json:"nodeType"`
	DisplayName string               `json:"displayName"`
	Description string               `json:"description,omitempty"`
	Category    string               `json:"category,omitempty"`
	Package     string               `json:"package"`
	IsVersioned bool                 `json:"isVersioned"`
	Version     float64              `json:"version"`
	IsAITool    bool                 `json:"isAITool,omitempty"`
	IsTrigger   bool                 `json:"isTrigger,omitempty"`
	Properties  []PropertyDescriptor `json:"properties"`
}

// PropertyDescriptor declares one configurable property of a node type.
type PropertyDescriptor struct {
	Name           string           `json:"name"`
	DisplayName    string           `json:"displayName,omitempty"`
	Type           string           `json:"type"`
	Required       bool             `json:"required,omitempty"`
	Default        any              `json:"default,omitempty"`
	Description    string           `json:"description,omitempty"`
	Options        []PropertyOption `json:"options,omitempty"`
	DisplayOptions *DisplayOptions  `json:"displayOptions,omitempty"`
}

// PropertyOption is one enumerated valid value for a property.
type PropertyOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DisplayOptions declares when a property is visible, keyed by sibling field
// values. A property with a Show condition participates in validation only
// when every referenced field matches one of the listed values.
type DisplayOptions struct {
	Show map[string][]any `json:"show,omitempty"`
	Hide map[string][]any `json:"hide,omitempty"`
}

// OptionValues returns the enumerated values of a property, or nil when the
// property is not an enumeration.
func (p *PropertyDescriptor) OptionValues() []string {
	if len(p.Options) == 0 {
		return nil
	}

	values := make([]string, 0, len(p.Options))
	for _, opt := range p.Options {
		values = append(values, opt.Value)
	}

	return values
}
