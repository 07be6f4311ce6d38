// Package httpclient constructs the HTTP client used to issue request
// attempts. The transport keeps a pooled connection set sized for
// load-generation concurrency and attempts HTTP/2 when the server
// supports it.
package httpclient
