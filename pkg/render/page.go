package render

import (
	"fmt"
	"io"

	"github.com/vango-dev/vdsl/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Meta contains meta tags for the page.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Styles contains inline CSS.
	Styles []string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name    string
	Content string
}

// WaitingStyle dims elements marked as waiting on resources.
const WaitingStyle = `[data-waiting="true"]{opacity:.5}`

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"%s\">\n", escapeAttr(lang)); err != nil {
		return err
	}
	if err := r.renderHead(w, page); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}

func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	head := "<head>\n" +
		"  <meta charset=\"utf-8\">\n" +
		"  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n"
	if page.Title != "" {
		head += "  <title>" + escapeHTML(page.Title) + "</title>\n"
	}
	for _, meta := range page.Meta {
		head += fmt.Sprintf("  <meta name=\"%s\" content=\"%s\">\n", escapeAttr(meta.Name), escapeAttr(meta.Content))
	}
	for _, href := range page.StyleSheets {
		head += fmt.Sprintf("  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(href))
	}
	styles := page.Styles
	if r.config.MarkWaiting {
		styles = append([]string{WaitingStyle}, styles...)
	}
	for _, style := range styles {
		head += "  <style>" + style + "</style>\n"
	}
	head += "</head>\n"

	_, err := io.WriteString(w, head)
	return err
}
