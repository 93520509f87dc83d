package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Lifecycle Errors (L001-L099)
	// ============================================

	"L001": {
		Category: CategoryLifecycle,
		Message:  "Component already mounted",
		Detail:   "A component instance can be mounted once. Unmount it first, or create a new instance.",
	},
	"L002": {
		Category: CategoryLifecycle,
		Message:  "Component not mounted",
		Detail:   "Unmount, UpdateState and UpdateProps require a mounted component.",
	},
	"L003": {
		Category: CategoryLifecycle,
		Message:  "Reserved method name",
		Detail:   "Component methods cannot shadow the built-in component API. The method was not bound.",
	},
	"L004": {
		Category: CategoryLifecycle,
		Message:  "Unknown method",
		Detail:   "The component has no method with this name.",
	},

	// ============================================
	// Render Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryRender,
		Message:  "Invalid insertion index",
		Detail:   "Insertion indices must be zero or positive. Use End to append.",
	},
	"R002": {
		Category: CategoryRender,
		Message:  "Unknown node kind",
		Detail:   "The virtual node has a kind the runtime does not know how to mount.",
	},
	"R003": {
		Category: CategoryRender,
		Message:  "Unknown component type",
		Detail:   "Component nodes must reference a type created with runtime.Define.",
	},
	"R004": {
		Category: CategoryRender,
		Message:  "Render returned nil",
		Detail:   "A component's Render function must return a node.",
	},

	// ============================================
	// Scheduler Errors (S001-S099)
	// ============================================

	"S001": {
		Category: CategoryScheduler,
		Message:  "Lifecycle hook failed",
		Detail:   "A deferred OnMounted or OnUnmounted hook returned an error.",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed.",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},

	// ============================================
	// CLI Errors (X001-X099)
	// ============================================

	"X001": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		Detail:   "The requested demo component does not exist.",
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
