// Package events defines the integration events written to the outbox in the same
// transaction as the state change they describe. A relay job publishes them later, so
// consumers see each event at least once.
package events
