// Package services contains stateless domain services for the delivery
// engine. Currently that is the PricingCalculator, which turns physical
// attributes into a price quote at creation time.
package services
