// Package api provides the HTTP boundary for the locomotive inventory
// service.
//
// It maps verbs and paths onto repository operations and translates
// their results to status codes. The core invariants live in
// internal/inventory and internal/auth; this package only dispatches:
//
//	GET    /records        any tier    list all records
//	GET    /records/{id}   any tier    one record, 404 on miss
//	POST   /records        admin       create, 400 without series/category
//	PUT    /records/{id}   admin       partial patch, 404 on miss
//	DELETE /records/{id}   admin       remove, returns the removed record
//
// A request whose token matches neither secret is rejected with 401; a
// reader token on an admin route is rejected with 403.
//
// The server follows the usual lifecycle pattern:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
