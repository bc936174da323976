// Package kernel connects a grid to a kernel bridge.
//
// The bridge serves the model record over HTTP and streams later changes
// over a websocket:
//
//	GET /api/model    the current model record as JSON
//	WS  /api/comm     model updates in, comm messages out
//
// Inbound frames carry a method and a model state:
//
//	{"method": "update", "state": {...}}   replace the whole model
//	{"method": "patch",  "state": {...}}   replace values and font colors
//
// Outbound frames wrap a grid comm message in an envelope with a fresh
// message id:
//
//	{"msg_id": "<uuid>", "content": {"data": {"event": "doubleclick", ...}}}
//
// Model fetches and websocket dials are retried with backoff. Stream
// reconnects after a dropped connection until its context ends or the
// client is closed.
package kernel
