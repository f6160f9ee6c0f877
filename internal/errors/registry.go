package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Group    string
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://vdsl.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryRender,
		Message:  "Improper render",
		DocURL:   docBase + "E100",
	},
	"E101": {
		Category: CategoryRender,
		Group:    "E100",
		Message:  "Improper render: returned element was not generated",
		DocURL:   docBase + "E101",
	},
	"E102": {
		Category: CategoryRender,
		Group:    "E100",
		Message:  "Improper render: too many elements",
		DocURL:   docBase + "E102",
	},
	"E103": {
		Category: CategoryRender,
		Group:    "E100",
		Message:  "Improper render: component returned instead of rendered",
		DocURL:   docBase + "E103",
	},
	"E104": {
		Category: CategoryRender,
		Group:    "E100",
		Message:  "Improper render: wrong kind of value returned",
		DocURL:   docBase + "E104",
	},
	"E105": {
		Category: CategoryRender,
		Message:  "Element is not in the current buffer",
		Detail:   "Replace was asked to substitute an element that has not been rendered into the current block.",
		DocURL:   docBase + "E105",
	},
	"E106": {
		Category: CategoryRender,
		Message:  "Invalid render target",
		DocURL:   docBase + "E106",
	},

	// ============================================
	// Resource Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryResource,
		Message:  "Not quiet: waiting on resources",
		Detail:   "An element is waiting on external data while strict rendering is enabled.",
		DocURL:   docBase + "E110",
	},

	// ============================================
	// Config Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		DocURL:   docBase + "E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration file could not be parsed",
		DocURL:   docBase + "E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		DocURL:   docBase + "E122",
	},

	// ============================================
	// Document Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryDocument,
		Message:  "Document could not be parsed",
		DocURL:   docBase + "E130",
	},
	"E131": {
		Category: CategoryDocument,
		Message:  "Unknown component",
		Detail:   "The node uses a component that the document does not define.",
		DocURL:   docBase + "E131",
	},
	"E132": {
		Category: CategoryDocument,
		Message:  "Invalid node",
		DocURL:   docBase + "E132",
	},
	"E133": {
		Category: CategoryDocument,
		Message:  "Document not found",
		DocURL:   docBase + "E133",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		DocURL:   docBase + "E140",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Project already exists",
		DocURL:   docBase + "E141",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
