// Package ws streams live machine health summaries to WebSocket clients.
// One Hub broadcasts the current report-store contents to every connected
// client on a fixed interval, with ping/pong keepalive.
package ws
