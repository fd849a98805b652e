// Package services provides domain services that span the order and worker aggregates.
//
// The package includes:
//   - ClaimPolicy: decides whether a delivery worker may claim an order and classifies
//     a claim that lost a concurrent race
//
// The policy only inspects aggregates in memory. The store still performs the claim as a
// single conditional update that also requires the worker to be active, and
// ClaimPolicy.ClassifyWorker and ClaimPolicy.Classify explain a zero-row result.
package services
