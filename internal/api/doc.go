// Package api exposes the typed operations an external transport layer
// would call: upload registration, status polling, listing, retry, sync,
// translation, screenshot capture, and delete. It converts internal
// records into transport-friendly views; no server is started here.
package api
