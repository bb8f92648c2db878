package extension

import (
	"github.com/vk/plughub/internal/command"
	"github.com/vk/plughub/internal/config"
	"github.com/vk/plughub/internal/registry"
)

// Extension is the capability set every extension implements.
//
// DistName, ExtName and Version must return non-empty strings once the
// extension is instantiated; a candidate missing any of them is structurally
// invalid and never reaches validation.
type Extension interface {
	// DistName returns the distribution name the extension ships under,
	// e.g. "plughub-httpapi". Informational only.
	DistName() string

	// ExtName returns the extension's short unique name. It doubles as the
	// extension's config section name and as the prefix for registry keys
	// the extension owns. It must match the entry point name the extension
	// was discovered under.
	ExtName() string

	// Version returns the extension's version string.
	Version() string

	// DefaultConfig returns the extension's default config as HCL text for
	// its own section. It must be non-empty; add at least
	// "enabled = true". There is no default implementation.
	DefaultConfig() string

	// ConfigSchema returns the extension's config validation schema. The
	// Base implementation returns a minimal schema containing the required
	// "enabled" Boolean; implementations extend it rather than replace it.
	ConfigSchema() *config.Schema

	// Command returns a subcommand to expose to command line users, or nil
	// for none. It must be side-effect free.
	Command() *command.Command

	// ValidateEnvironment checks whether the current runtime environment
	// can support the extension, returning an *Error describing the
	// problem when it cannot. Declared distribution dependencies are
	// checked by the host separately and must not be re-checked here.
	ValidateEnvironment() error

	// Setup registers the extension's components in the shared registry,
	// for example:
	//
	//	func (e *Extension) Setup(r *registry.Registry) error {
	//		r.Add("backend", component.Factory(newBackend))
	//		return nil
	//	}
	//
	// The host instantiates and runs components registered under the
	// "frontend" and "backend" keys. Setup may also perform other one-time
	// work. There is no default implementation: a type without Setup does
	// not satisfy this interface and is rejected at discovery.
	Setup(r *registry.Registry) error
}

// Factory constructs a fresh extension instance. Entry points resolve to
// factories so discovery controls instantiation and its failure handling.
type Factory func() Extension

// Base carries an extension's static metadata and supplies the defaulted
// operations of the Extension contract. Embed it by value:
//
//	type Extension struct {
//		extension.Base
//	}
//
//	func New() extension.Extension {
//		return &Extension{Base: extension.Base{
//			Dist: "plughub-demo",
//			Name: "demo",
//			Ver:  "1.0.0",
//		}}
//	}
//
// Base deliberately provides neither DefaultConfig nor Setup.
type Base struct {
	Dist string
	Name string
	Ver  string
}

func (b Base) DistName() string { return b.Dist }

func (b Base) ExtName() string { return b.Name }

func (b Base) Version() string { return b.Ver }

// ConfigSchema returns the minimal schema: a single required "enabled"
// Boolean option.
func (b Base) ConfigSchema() *config.Schema {
	schema := config.NewSchema(b.Name)
	schema.Set("enabled", config.Boolean{})
	return schema
}

// Command returns nil; most extensions expose no subcommand.
func (b Base) Command() *command.Command { return nil }

// ValidateEnvironment is a no-op; extensions with environment requirements
// override it.
func (b Base) ValidateEnvironment() error { return nil }
