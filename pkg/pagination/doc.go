// Package pagination collects cursor-paginated ID listings.
//
// Cursor listings such as friends/ids and followers/ids start at cursor -1
// and hand back a next cursor with every page; cursor 0 means the listing is
// exhausted. Collect walks that chain one page at a time:
//
//	res, err := pagination.Collect(ctx, fetcher, pagination.Options{Name: "friends/ids"})
//	if err != nil {
//		return err
//	}
//	if !res.Done() {
//		// Capped: resume later with Options{StartCursor: res.Cursor}.
//	}
//
// A run stops at the first of:
//   - the server returning cursor 0
//   - 75,000 accumulated IDs (checked after each page)
//   - a page ceiling that bounds the loop even if every page is empty
//
// A failed page fetch fails the whole run with the fetcher's error; partial
// results are dropped. Runs are sequential and each owns its accumulator.
package pagination
