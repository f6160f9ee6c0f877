// Package preview serves element documents as HTML pages.
//
// Routes:
//
//	GET /                   index of all documents
//	GET /components/{name}  the document rendered as a page (?fragment=1
//	                        for the element only, ?strict=true to fail
//	                        while data is pending)
//	GET /healthz            liveness
//	GET /metrics            Prometheus metrics of all renders
//
// Render failures map to status codes: an improper render is 500, an
// element waiting on resources in strict mode is 503 with Retry-After, an
// unknown document is 404 and an invalid document is 422. Clients sending
// Accept: application/json get the coded error as JSON.
package preview
