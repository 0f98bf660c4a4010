// Package order implements the order aggregate for the delivery tracking workflow.
//
// The aggregate root is Order, identified by a kernel.UUID and owned by the
// remote order store. Status is a whitelist-validated string value object;
// Type selects the normal or custom order family. Customer and LineItem are
// read models carried for display.
//
// Status transitions are deliberately permissive: the store accepts any
// whitelisted status regardless of the current one. See Status.TransitionTo.
package order
