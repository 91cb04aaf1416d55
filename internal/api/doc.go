// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between clients and the
// directory, translating domain and directory errors into status codes and
// reason codes.
package api
