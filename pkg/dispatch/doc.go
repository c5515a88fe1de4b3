// Package dispatch implements the ordered message queue the animation engine
// runs on.
//
// A [Queue] has any number of producers and exactly one consumer. Producers
// call [Queue.Send] or [Queue.SendDelayed] from any goroutine; the consumer,
// either [Queue.Run] on its own goroutine or a test calling [Queue.RunDue],
// delivers messages to the [Handler] one at a time in (When, enqueue) order.
// Because only the consumer touches handler state, the handler needs no locks.
//
// Pending messages of a kind can be cancelled with [Queue.Remove]. The engine
// uses this to keep at most one frame tick outstanding.
package dispatch
