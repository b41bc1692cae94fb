// Package export hands rendered documents to a delivery target.
//
// A Sink owns the transient resource behind one export (a file on disk or an in-memory
// download slot). Every Acquire must be paired with a Release; Deliver wraps that pairing
// so the release happens on every path:
//
//	err := export.Deliver(ctx, sink, data, "updated-theme.json", func(h export.Handle) error {
//		return notify(h.Location)
//	})
package export
