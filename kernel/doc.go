// Package kernel defines the portable kernel intermediate representation
// consumed by the WGSL lowering pass.
//
// A kernel is described by a [Definition]: ordered input and output
// bindings, named extra bindings, a workgroup size and a root [Scope].
// Scopes hold declarations and an ordered list of operations; branch and
// loop operations embed nested scopes, so the whole program is a tree.
//
// # Tagged unions
//
// [Variable] and [Operation] are closed sets of struct types, each
// implementing an unexported marker method. Consumers switch on the
// concrete type:
//
//	switch v := variable.(type) {
//	case kernel.Local:
//	    // ...
//	case kernel.Builtin:
//	    // ...
//	}
//
// The IR is produced once by upstream passes and is treated as read-only
// by the lowering pass.
package kernel
