package view_test

import (
	"bytes"
	"testing"

	"portfolio-website/internal/delivery/http/view"
	"portfolio-website/internal/domain"
	"portfolio-website/internal/repository/cms"
	"portfolio-website/pkg/richtext"
	"portfolio-website/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderField(t *testing.T) {
	t.Run("Should render each kind", func(t *testing.T) {
		cases := map[domain.FieldKind]string{
			domain.FieldText:     `type="text"`,
			domain.FieldEmail:    `type="email"`,
			domain.FieldPhone:    `type="tel"`,
			domain.FieldTextarea: `<textarea id="field-x" name="x" rows="5"`,
			domain.FieldSelect:   `<select id="field-x" name="x"`,
		}
		for kind, want := range cases {
			out, err := view.RenderField(domain.FormField{Name: "x", Label: "X", Kind: kind}, "")
			require.NoError(t, err, kind)
			assert.Contains(t, string(out), want, kind)
		}
	})

	t.Run("Should escape submitted values", func(t *testing.T) {
		out, err := view.RenderField(domain.FormField{Name: "name", Label: "Name", Kind: domain.FieldText}, `"><script>x()</script>`)
		require.NoError(t, err)
		assert.NotContains(t, string(out), "<script>")
	})

	t.Run("Should select the submitted option", func(t *testing.T) {
		f := domain.FormField{Name: "budget", Label: "Budget", Kind: domain.FieldSelect, Options: []string{"Small", "Large"}}
		out, err := view.RenderField(f, "Large")
		require.NoError(t, err)
		assert.Contains(t, string(out), `<option value="Large" selected>Large</option>`)
		assert.Contains(t, string(out), `<option value="Small">Small</option>`)
	})

	t.Run("Should reject unknown kinds", func(t *testing.T) {
		_, err := view.RenderField(domain.FormField{Name: "cv", Kind: "upload"}, "")
		assert.Error(t, err)
	})
}

func TestFormFields(t *testing.T) {
	t.Run("Should fall back to the core fields", func(t *testing.T) {
		fields := view.FormFields(domain.ContactContent{})
		require.Len(t, fields, 4)
		assert.Equal(t, "name", fields[0].Name)
		assert.Equal(t, "message", fields[3].Name)
	})

	t.Run("Should add missing core fields and drop unknown kinds", func(t *testing.T) {
		fields := view.FormFields(domain.ContactContent{FormFields: []domain.FormField{
			{Name: "email", Label: "Email", Kind: domain.FieldEmail},
			{Name: "cv", Label: "CV", Kind: "upload"},
			{Name: "phone", Label: "Phone", Kind: domain.FieldPhone},
		}})
		var names []string
		for _, f := range fields {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"name", "subject", "message", "email", "phone"}, names)
	})
}

func TestTemplatesRenderDefaults(t *testing.T) {
	tmpl, err := view.Load(web.FS, richtext.NewRenderer())
	require.NoError(t, err)

	site := cms.Defaults()
	page := &view.Page{
		Site:     site,
		Project:  &site.Projects.Projects[0],
		Service:  &site.Services.Services[0],
		Projects: &domain.PaginatedProjects{Data: site.Projects.Projects, Pagination: domain.Pagination{Page: 1, PageSize: 1, Total: 3, TotalPages: 3}},
		Contact:  &view.ContactForm{Fields: view.FormFields(site.Contact), Values: map[string]string{}},
	}
	for _, name := range []string{"home.html", "service.html", "projects.html", "project.html"} {
		var buf bytes.Buffer
		require.NoError(t, tmpl.ExecuteTemplate(&buf, name, page), name)
		assert.Contains(t, buf.String(), "</html>", name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "projects.html", page))
	assert.Contains(t, buf.String(), `<span aria-current="page">1</span>`)
	assert.Contains(t, buf.String(), `href="/projects?page=2&amp;pageSize=1"`)
}
