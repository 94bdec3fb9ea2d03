// Package textutil provides small text helpers shared by the catalog, profile
// store, and CLI: turning directory and file names into display labels and
// checking whether a user-supplied name is safe to use as a file name.
package textutil
