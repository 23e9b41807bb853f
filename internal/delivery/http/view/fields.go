package view

import (
	"bytes"
	"fmt"
	"html/template"

	"portfolio-website/internal/domain"
)

// One template per field kind. RenderField picks the template by the
// field's Kind tag.
const fieldTemplates = `
{{define "input"}}<div class="field">
  <label for="{{.ID}}">{{.Field.Label}}{{if .Field.Required}} <span aria-hidden="true">*</span>{{end}}</label>
  <input id="{{.ID}}" name="{{.Field.Name}}" type="{{.InputType}}" value="{{.Value}}"{{with .Field.Placeholder}} placeholder="{{.}}"{{end}}{{if .Field.Required}} required{{end}}{{if .Field.MinLength}} minlength="{{.Field.MinLength}}"{{end}}{{if .Field.MaxLength}} maxlength="{{.Field.MaxLength}}"{{end}}>
</div>{{end}}
{{define "textarea"}}<div class="field">
  <label for="{{.ID}}">{{.Field.Label}}{{if .Field.Required}} <span aria-hidden="true">*</span>{{end}}</label>
  <textarea id="{{.ID}}" name="{{.Field.Name}}" rows="{{.Rows}}"{{with .Field.Placeholder}} placeholder="{{.}}"{{end}}{{if .Field.Required}} required{{end}}{{if .Field.MaxLength}} maxlength="{{.Field.MaxLength}}"{{end}}>{{.Value}}</textarea>
</div>{{end}}
{{define "select"}}<div class="field">
  <label for="{{.ID}}">{{.Field.Label}}{{if .Field.Required}} <span aria-hidden="true">*</span>{{end}}</label>
  <select id="{{.ID}}" name="{{.Field.Name}}"{{if .Field.Required}} required{{end}}>
    <option value="">{{if .Field.Placeholder}}{{.Field.Placeholder}}{{else}}Choose one{{end}}</option>
    {{- range .Field.Options}}
    <option value="{{.}}"{{if eq . $.Value}} selected{{end}}>{{.}}</option>
    {{- end}}
  </select>
</div>{{end}}
`

var fields = template.Must(template.New("fields").Parse(fieldTemplates))

type fieldData struct {
	Field     domain.FormField
	ID        string
	Value     string
	InputType string
	Rows      int
}

// RenderField renders the input for one contact form field.
func RenderField(f domain.FormField, value string) (template.HTML, error) {
	data := fieldData{Field: f, ID: "field-" + f.Name, Value: value}

	var name string
	switch f.Kind {
	case domain.FieldText:
		name, data.InputType = "input", "text"
	case domain.FieldEmail:
		name, data.InputType = "input", "email"
	case domain.FieldPhone:
		name, data.InputType = "input", "tel"
	case domain.FieldTextarea:
		name, data.Rows = "textarea", f.Rows
		if data.Rows <= 0 {
			data.Rows = 5
		}
	case domain.FieldSelect:
		name = "select"
	default:
		return "", fmt.Errorf("view: unsupported field type %q for %q", f.Kind, f.Name)
	}

	var buf bytes.Buffer
	if err := fields.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// DefaultFormFields is used when the CMS defines no fields. The four inquiry
// fields are always present.
func DefaultFormFields() []domain.FormField {
	return []domain.FormField{
		{Name: "name", Label: "Name", Kind: domain.FieldText, Required: true, MinLength: 2, MaxLength: 100},
		{Name: "email", Label: "Email", Kind: domain.FieldEmail, Required: true, MaxLength: 254},
		{Name: "subject", Label: "Subject", Kind: domain.FieldText, Required: true, MinLength: 3, MaxLength: 200},
		{Name: "message", Label: "Message", Kind: domain.FieldTextarea, Required: true, MinLength: 10, MaxLength: 5000, Rows: 6},
	}
}

// FormFields returns the fields to render: the CMS list without fields of
// unknown kind, with any missing core field added in front.
func FormFields(contact domain.ContactContent) []domain.FormField {
	var known []domain.FormField
	for _, f := range contact.FormFields {
		if f.Kind.Known() {
			known = append(known, f)
		}
	}
	if len(known) == 0 {
		return DefaultFormFields()
	}
	present := make(map[string]bool, len(known))
	for _, f := range known {
		present[f.Name] = true
	}
	var out []domain.FormField
	for _, f := range DefaultFormFields() {
		if !present[f.Name] {
			out = append(out, f)
		}
	}
	return append(out, known...)
}
