// Package queue models an instructor's queue tree and its tagged-block file
// format.
//
// A Profile owns ProgramQueues, each ProgramQueue owns StationQueues, and each
// StationQueue owns named GroupQueues. Names are unique among siblings. Groups
// hold ordered references to catalog media items; the catalog owns the items
// and a reference may appear in several groups at once.
//
// Encode renders a profile in the nested tag format stored in
// <ProfileDir>/<Name>.xml and Decode parses it back line by line, resolving
// each file reference through the catalog. Decode reports malformed or
// truncated input as ErrProfileParse; callers treat such a profile as absent.
//
// Treat this package as pure data: it never touches the profile directory and
// never decides when to reconcile. That belongs to the profiles package.
package queue
