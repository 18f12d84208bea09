// Package tui implements the terminal user interface for the loan
// application wizard.
//
// The interface is built with Bubble Tea. AppModel is the single top-level
// model: it owns the wizard state machine and renders one screen per step,
// from identity entry through OTP verification, personal data review,
// amount selection, offer review, the signing ceremony and delivery choice,
// up to the final result screen. Backend calls run inside commands so the
// update loop never blocks; a busy flag keeps at most one mutation in
// flight. Result polling is driven from the tick loop at a fixed interval.
package tui
