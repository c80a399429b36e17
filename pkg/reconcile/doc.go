// Package reconcile drives one declared repository at a time from its
// on-disk state toward its declared state.
//
// Every operation returns a Result with a closed Outcome label instead of
// an error: capability failures are folded into OutcomeFailed so a batch
// keeps going after one repo breaks. Repos are processed sequentially in
// declared order.
package reconcile
