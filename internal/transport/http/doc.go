// Package http implements the HTTP handlers of the admission API.
//
// Handlers stay thin: they decode and validate input, call a service and
// render the result with go-chi/render. Every failure goes through
// errors.ErrorHandler so bodies share one shape:
//
//	{"error": "mensaje para el usuario", "code": "NOT_FOUND", "request_id": "..."}
//
// Routes:
//
//	GET  /api/opciones/{year}   universities and programs of a year
//	POST /api/consultar         score range for a university and program
//	GET  /api/anios             years with data
//	GET  /api/health[/ready|/live], /api/version
//	GET  /metrics               Prometheus exposition
package http
