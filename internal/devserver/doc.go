// Package devserver serves a demo component to the browser.
//
// The component runs on the server. Each websocket connection gets its own
// session: an in-memory document, a runtime and an event loop. The browser
// receives the rendered HTML, in which elements with listeners carry a
// data-lw-id attribute, and reports DOM events back by that id. The session
// dispatches the event on its loop and answers with the new HTML and a
// summary of the renderer mutations the patch produced.
//
// Routes:
//
//	GET /         page with the client script
//	GET /ws       websocket endpoint
//	GET /healthz  liveness probe
//	GET /metrics  Prometheus metrics, when enabled
package devserver
