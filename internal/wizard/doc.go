// Package wizard implements the loan-application state machine.
//
// A Session accumulates the applicant's data across ten ordered steps,
// from identity entry through OTP verification, personal info, amount
// selection, offer review, disclosure, contract signature, video KYC and
// delivery selection to the final result. The Machine owns the session
// and decides legal transitions: each mutating operation validates
// locally, calls the backend gateway, and only then moves the step.
//
// Validation rules are pure functions and never contact the backend.
// Rate math (IndicativeRate, MonthlyPayment) is likewise pure.
//
// The late-stage transitions follow a configurable AdvancementPolicy.
// Under Optimistic (the default) a failed amount submission, offer
// accept/reject or finalize still advances the wizard: the product
// prefers moving the applicant forward over strict backend fidelity.
// Strict mode keeps the step and surfaces the error instead.
//
// A Poller runs alongside the later steps, fetching the result resource
// at a fixed interval and projecting it into a displayable view. Fetch
// failures degrade to a synthesized placeholder; the projection logic
// lives in Projector, separate from the raw gateway responses, so it can
// be tested in isolation.
package wizard
