// Package http provides HTTP handlers and middleware for the availability API.
//
// The router exposes the following endpoints:
//   - GET /departments/{id}/status: resolves whether a department is open right
//     now and the guest-facing label, returning the `departmentStatusDTO`
//     payload defined in department_handler.go.
//   - GET /events/{id}/availability: resolves the next live occurrence, the
//     booking window state, and whether the event is accepting requests,
//     returning the `eventAvailabilityDTO` payload defined in event_handler.go.
//   - POST /events/validate: edit-time validation for the CMS authoring flow.
//     Nothing is stored; a clean pass returns {"valid":true} and a failed pass
//     returns 422 with a per-field error map.
//   - GET /healthz: liveness probe that degrades to 503 when the content
//     backend is unreachable.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
