// Package host specifies, at interface depth only, the surface a
// generated extension module needs from the host scripting runtime:
// something to register entry points and the Buffer class against, and a
// dynvalue.Factory to mint DynValues from native results. spec.md §2
// treats the host runtime's object model as an opaque external
// collaborator; this package is the seam the code generator emits calls
// against without absorbing any concrete host runtime into this repo.
package host

import "github.com/regionc/regionc/runtime/dynvalue"

// EntryPoint is the signature every generated function is exposed under:
// the host handle plus the dynamic-value arguments the caller supplied.
type EntryPoint func(h Host, args []dynvalue.DynValue) dynvalue.DynValue

// Host is what a generated module's Register function is handed.
type Host interface {
	// Factory returns the dynvalue.Factory this host mints DynValues from.
	Factory() dynvalue.Factory
	// RegisterFunction exposes fn to the host under name.
	RegisterFunction(name string, fn EntryPoint)
	// RegisterBufferType tells the host about the Buffer class, once per
	// module, per spec.md §4.4's "module registration stub".
	RegisterBufferType()
}
