// Package syncer runs the end-to-end sync: spreadsheet rows in, platform
// events out.
//
// A run is a straight pipeline. Fetch and validate the source rows, list and
// index the remote events, reconcile the two into a plan, then apply each
// planned action in row order with a courtesy delay after every mutating
// call. One bad record never aborts the run; it lands in the failed bucket
// and the loop moves on.
package syncer
