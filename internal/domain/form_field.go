package domain

// FieldKind tags the variant of a contact form field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldEmail    FieldKind = "email"
	FieldTextarea FieldKind = "textarea"
	FieldSelect   FieldKind = "select"
	FieldPhone    FieldKind = "phone"
)

// FormField describes one input of the contact form as configured in the CMS.
// Options is only meaningful for FieldSelect, Rows only for FieldTextarea.
type FormField struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"type" yaml:"type"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool      `json:"required" yaml:"required"`
	MinLength   int       `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   int       `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Rows        int       `json:"rows,omitempty" yaml:"rows,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// IsCore reports whether the field maps onto InquiryFormData directly.
func (f FormField) IsCore() bool {
	switch f.Name {
	case "name", "email", "subject", "message":
		return true
	}
	return false
}

// Known reports whether the kind is one of the supported variants.
func (k FieldKind) Known() bool {
	switch k {
	case FieldText, FieldEmail, FieldTextarea, FieldSelect, FieldPhone:
		return true
	}
	return false
}
