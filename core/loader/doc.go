// Package loader provides the plugin-like feature loading system.
//
// Features (client lookup, roster reconciliation) implement the Feature
// interface and are registered on a Manager by the composition root.
// LoadAll wires the enabled ones onto the Fiber application. Keeping
// features behind this interface lets each one be developed and tested
// in isolation.
package loader
