// Package http contains the chi HTTP handlers for the branch analytics
// API. Handlers translate service errors into RFC 7807 problem responses
// and keep response envelopes consistent across endpoints.
package http
