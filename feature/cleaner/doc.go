// Package cleaner exposes controller scans over HTTP.
//
// The Service wraps a scan.Registry and the assetstore.Store it scans. It is
// shared by the HTTP handler and the scan command so both drive the same
// lifecycle: start a scan, wait for it, clean the obsolete sub-assets and
// save the controller back to its backend.
//
// # HTTP Endpoints
//
//   - GET /controllers : results of every scan, newest first.
//   - GET /controllers/discover : keys of every stored controller.
//   - POST /controllers/scan : scan every controller (supports ?wait=true).
//   - POST /controllers/clean : clean every controller and save it.
//   - GET /controllers/:key : one result.
//   - DELETE /controllers/:key : drop one result.
//   - POST /controllers/:key/scan : scan one controller (supports ?wait=true).
//   - POST /controllers/:key/cancel : cancel a running scan.
//   - POST /controllers/:key/clean : clean one controller. Answers 409 when
//     the last scan found nothing to remove.
package cleaner
