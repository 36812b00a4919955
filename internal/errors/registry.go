package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Render Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryRender,
		Message:  "Invalid template",
		Detail:   "The template must be an element or a document fragment.",
	},
	"E101": {
		Category: CategoryRender,
		Message:  "Invalid render map",
		Detail:   "A render map maps selectors to an attribute set or to a list of attribute sets.",
	},
	"E102": {
		Category: CategoryRender,
		Message:  "Invalid attribute value",
		Detail:   "Attribute values must be scalars; styles must be a mapping; children and positional inserts must be markup.",
	},
	"E103": {
		Category: CategoryRender,
		Message:  "Template parse failed",
		Detail:   "The template markup could not be parsed as HTML.",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid domkit.json",
		Detail:   "The configuration file could not be read or parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No domkit.json was found.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or malformed.",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Missing required flag",
		Detail:   "The command requires a flag that was not provided.",
	},
	"E141": {
		Category: CategoryCLI,
		Message:  "Cannot read input file",
		Detail:   "The input file does not exist or is not readable.",
	},

	// ============================================
	// Validation Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryValidation,
		Message:  "Invalid input",
		Detail:   "The arguments are not of the expected shape.",
	},

	// ============================================
	// Request Errors (E200-E219)
	// ============================================

	"E201": {
		Category: CategoryRequest,
		Message:  "JSON encode failed",
		Detail:   "The request body could not be encoded as JSON. The request was not sent.",
	},
	"E202": {
		Category: CategoryRequest,
		Message:  "JSON decode failed",
		Detail:   "The response body could not be decoded as JSON.",
	},
	"E203": {
		Category: CategoryRequest,
		Message:  "Missing request URL",
		Detail:   "A request needs a non-empty URL.",
	},
	"E204": {
		Category: CategoryRequest,
		Message:  "Transport failed",
		Detail:   "The transport could not complete the request.",
	},
}

// Register adds or replaces an error template.
func Register(code string, t Template) {
	registry[code] = t
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}

// GetAllCodes returns all registered codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
