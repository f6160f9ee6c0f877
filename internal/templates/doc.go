// Package templates provides project scaffolding for vdsl init.
//
// Each template is a set of files executed with text/template against a
// Config and written below the project directory:
//
//	tmpl, err := templates.Get("showcase")
//	if err != nil {
//	    return err
//	}
//	err = tmpl.Create(dir, templates.Config{ProjectName: "shop"})
//
// Template variables:
//
//	{{.ProjectName}}  - Name of the project
//	{{.Title}}        - Preview page title
//	{{.Strict}}       - Whether renders fail on pending elements
package templates
