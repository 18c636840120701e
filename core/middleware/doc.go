// Package middleware groups the HTTP middleware of the server.
//
//   - auth: API key validation. An empty key disables it; a Skip hook lets
//     public routes such as /metrics and /swagger through.
//   - rayid: tags each request with a ray id, stored in the fiber locals and
//     echoed in the X-Ray-ID response header, so logger.WithRayID can
//     correlate log lines.
package middleware
