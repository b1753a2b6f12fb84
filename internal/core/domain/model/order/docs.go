// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order captures a client's purchase from a shop: immutable references to
// both parties, price-snapshotted lines, a delivery address, and a status that
// moves along a fixed transition graph until it reaches a terminal state.
// Courier binding is part of the workflow: the ready -> in_delivery edge can
// only be crossed by assigning a courier, keeping the binding and the status
// consistent at every observable point.
package order
