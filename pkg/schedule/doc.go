// Package schedule provides cycle-aware iterators that replay an acyclic
// task graph across repeated cycles.
//
// Two iterators are available:
//
//   - [CycleIterator] finishes each cycle completely before starting the
//     next one: cycle 0's batches, then cycle 1's, and so on.
//   - [TasksIterator] overlaps cycles: a later cycle starts releasing nodes
//     while the earlier cycle is still in flight, held back only where a
//     removed back-edge says a node must wait for the previous cycle.
//
// Both produce lazy sequences of ready batches via an explicit
// Next() (Batch, bool) protocol; false signals exhaustion. Labels carry the
// owning cycle number as a suffix, so "b.1" is node b in the second cycle.
//
//	it, _ := schedule.NewTasksIterator(g, 2)
//	for batch, ok := it.Next(); ok; batch, ok = it.Next() {
//	    dispatch(batch)
//	}
package schedule
