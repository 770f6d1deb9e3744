// Package http provides the HTTP surface of the studio scheduler API.
//
// Unauthenticated endpoints:
//   - GET /health: liveness probe.
//   - POST /signup: self-service registration. Body: {"email","name","password"}.
//   - POST /sessions: issues a session token. Body: {"email","password"}.
//     The token is returned in the body, the `X-Session-Token` header and a
//     `session_token` cookie.
//
// Everything else requires a session token via `Authorization: Bearer` or the
// session cookie:
//   - PUT /sessions/current, DELETE /sessions/current: refresh or end the
//     caller's own session. DELETE /sessions/{token} lets an administrator
//     revoke someone else's.
//   - /users, /rooms, /brands, /brand-schedules: CRUD collections. Listing is
//     open to any authenticated principal; mutations are admin-only and
//     enforced in the application layer.
//   - GET/POST /availability, DELETE /availability/{id}: hosts publish the
//     slots they can stream on a given date. GET takes an optional ?date=
//     filter. GET /host-schedule-stats summarizes per-host load.
//   - GET/POST /room-assignments, GET/DELETE /room-assignments/{id}: bookings
//     of a host into a room for a brand. POST /validate-room-assignment
//     dry-runs the same checks and returns a verdict without writing.
//     GET /my-rooms lists the rooms the calling host is booked into.
//   - POST /get-available-hosts: hosts free for a brand, date and slot set.
//   - GET /room-availability/{roomId}/{date}: per-slot occupancy of a room.
//   - POST /match-brand-schedule: projects a brand's weekly schedule template
//     onto a concrete date and reports candidate rooms and hosts.
//
// Request and response DTOs live alongside their handlers so tests and
// documentation share the same ground truth. All payload keys are camelCase
// and timestamps are RFC 3339 in UTC.
package http
