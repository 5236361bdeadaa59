// Package engine contains the simulation loop for one day at the emergency room.
//
// ARCHITECTURAL RULE: the Clock only advances time. The Engine emits a
// TIME_TICK event per minute and the subsystems react to it, in a fixed
// order, on the calling goroutine.
package engine
