// Package api handles incoming HTTP requests, routing, request decoding and
// response formatting. It acts as an adapter between external clients and
// the internal application services: handlers decode JSON payloads, call a
// service, and translate the result or error into an HTTP response.
//
// Every resource is served under /api with the same shape:
//
//	GET    /api/{resource}       list, with the X-Total-Count header
//	POST   /api/{resource}       create, 201
//	GET    /api/{resource}/{id}  show
//	PUT    /api/{resource}/{id}  partial update
//	DELETE /api/{resource}/{id}  delete, 204
package api
