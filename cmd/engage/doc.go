// Command engage manages kiosk instructor queues over a media library.
//
// Every command loads the configuration once, scans the library into a
// catalog, and opens the profile store, which reconciles the default profile
// before anything else runs. Queue lookups go through the same
// reconciliation path the kiosk uses, so "engage queues" doubles as a way to
// heal a profile by hand.
package main
