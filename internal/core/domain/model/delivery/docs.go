// Package delivery contains the Delivery aggregate and its supporting value
// objects: the five-state Status machine, the Actor performing an operation
// and the immutable PhysicalAttributes the price quote derives from.
//
// The aggregate enforces every lifecycle rule in-process: which actor may
// move a delivery between which states, what each transition records and
// that the version counter advances by exactly one per mutation. Stores
// persist the aggregate and enforce the version compare-and-set; they add
// no business rules of their own.
package delivery
