// Package worker implements the delivery worker aggregate and its approval lifecycle.
//
// A worker registers as pending, an administrator approves (active) or rejects the
// application, and an active worker may later be suspended. Suspension is final.
// Only active workers may see or claim orders; callers re-read the worker before every
// gated operation instead of caching the approval state.
package worker
