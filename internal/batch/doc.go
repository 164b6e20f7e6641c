// Package batch implements the concurrent batch-execution core: turning
// a validated run configuration into one job per input, running those
// jobs through a slot-throttled worker pool, and funnelling every result
// through a single serialized reporting lane.
//
// # Execution model
//
// [Executor.Run] dispatches inputs in order. Dispatch blocks only on
// acquiring one of Jobs execution slots, so at most Jobs transformations
// are ever in flight regardless of how many inputs were given. Each
// worker releases its slot as soon as its own work finishes, before its
// result is reported, so a freed slot is reusable immediately.
//
// Results flow over an unbuffered channel into a drain loop running on
// the caller's goroutine. That loop is the only place counters mutate
// and the only driver of the [Reporter], which makes both race-free
// without locks. The loop ends when every dispatched job has reported,
// so Run cannot return before all results are accounted for.
//
// # Failure semantics
//
// A job that fails to load or save is recorded as a failed [JobResult]
// and the batch continues; there are no retries. Only configuration
// validation can fail a run before dispatch.
package batch
