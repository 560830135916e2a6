package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration",
		Suggestion: "Check that isoview.json is valid JSON",
	},
	"E121": {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Suggestion: "Create isoview.json in the project root or pass --config",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port",
	},
	"E123": {
		Category:   CategoryConfig,
		Message:    "Invalid manifest",
		Suggestion: "Check that the manifest is valid YAML and every state has a name",
	},
	"E124": {
		Category: CategoryConfig,
		Message:  "Manifest file not readable",
	},
	"E125": {
		Category:   CategoryConfig,
		Message:    "Invalid asset manifest",
		Suggestion: "The asset manifest must be a JSON object mapping source names to fingerprinted names",
	},

	// ============================================
	// CLI Errors (E140-E149)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Invalid argument",
	},
	"E141": {
		Category:   CategoryCLI,
		Message:    "Project not found",
		Suggestion: "Run the command inside a directory containing isoview.json",
	},
	"E142": {
		Category:   CategoryCLI,
		Message:    "Unknown project template",
		Suggestion: "Run 'isoview init --list' to see the available templates",
	},
	"E143": {
		Category:   CategoryCLI,
		Message:    "Project already exists",
		Suggestion: "Choose an empty directory or pass --force to overwrite",
	},
	"E144": {
		Category: CategoryCLI,
		Message:  "Command failed",
	},

	// ============================================
	// Render Errors (E200-E209)
	// ============================================

	"E200": {
		Category:   CategoryRender,
		Message:    "Fragment has no content",
		Suggestion: "Set markup on the fragment in the state's activation hook",
	},
	"E201": {
		Category:   CategoryRender,
		Message:    "Child is not a fragment",
		Suggestion: "Attach children with CreateChild or SetChild using a fragment value",
	},
	"E202": {
		Category:   CategoryRender,
		Message:    "No placeholder found",
		Suggestion: "Add a <ui-view> tag or a ui-view attribute to the parent markup",
	},
	"E203": {
		Category: CategoryRender,
		Message:  "Invalid markup value",
	},
	"E204": {
		Category: CategoryRender,
		Message:  "Data island encoding failed",
	},
	"E205": {
		Category: CategoryRender,
		Message:  "Template rendering failed",
	},

	// ============================================
	// Routing Errors (E210-E219)
	// ============================================

	"E210": {
		Category:   CategoryRouting,
		Message:    "State not found",
		Suggestion: "Declare the state and all of its ancestors with AddState",
	},
	"E211": {
		Category: CategoryRouting,
		Message:  "Invalid state definition",
	},
	"E212": {
		Category: CategoryRouting,
		Message:  "Missing route parameter",
	},
	"E213": {
		Category: CategoryRouting,
		Message:  "No route matches path",
	},
	"E214": {
		Category:   CategoryRouting,
		Message:    "State hook panicked",
		Suggestion: "Return an error from the hook instead of panicking",
	},

	// ============================================
	// Export Errors (E220-E229)
	// ============================================

	"E220": {
		Category: CategoryExport,
		Message:  "Export target failed",
	},
	"E221": {
		Category: CategoryExport,
		Message:  "Upload failed",
	},
}
