// Package queries contains the read operations of the delivery engine.
// Query handlers read the deliveries table directly through GORM, bypassing
// the unit of work: reads are side-effect free and may be served from a
// read replica.
package queries
