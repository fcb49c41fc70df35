/*
Package middleware provides the HTTP middleware stack of the gateway.

  - CORS: cross-origin headers via gin-contrib/cors, open by default
  - RequestID: X-Request-ID propagation and generation
  - AccessLog: one structured zap line per request
  - Recovery: panics become a 500 with a JSON detail body
  - RateLimit / GlobalRateLimit: token buckets from x/time/rate
  - Gzip: response compression wrapping the whole router

Usage:

	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
*/
package middleware
