// Package plugin holds the priority-ordered plugin registry.
//
// A plugin is a VTable (Init, Update, Shutdown, OnEvent) plus an id and a
// priority. The Registry keeps plugins sorted by descending priority at
// insertion time and visits them in that order for both Update and
// Dispatch.
//
// # Lifecycle
//
//	Register ──► Registered ──InitPlugin──► Initialized
//	                               │
//	                               └──(Init false / panic)──► Failed
//	ShutdownAll ──► Shutdown
//
// A Failed plugin stays registered and keeps receiving Update and OnEvent
// calls. Its handlers must cope with partially initialized state.
//
// # Threading
//
// Update, Dispatch and every VTable call run on the UI thread. Dispatch
// works on a snapshot taken under the read lock, so an OnEvent handler may
// emit and dispatch further events. Update holds the read lock for the
// whole pass; plugins must not register or shut down plugins from Update.
package plugin
