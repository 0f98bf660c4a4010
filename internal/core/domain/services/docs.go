// Package services provides domain services for the delivery tracking workflow.
//
// The package includes:
//   - ArrivalPolicy: the proximity gate deciding whether a driver is close
//     enough to the destination to mark a delivery completed
//
// Domain services hold business rules that span value objects without
// belonging to a single aggregate.
package services
