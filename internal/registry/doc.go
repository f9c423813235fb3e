// Package registry speaks the component registry's HTTP protocol.
//
// Endpoints, relative to the configured origin:
//
//	POST {origin}/upload?author=<author>&email=<email>   multipart field "file"
//	GET  {origin}/components/{name}                      {"code":0,"data":"/files/x.zip","msg":""}
//	GET  {origin}{data}                                  archive bytes
//
// A publish succeeds on any 2xx; the response body is not interpreted.
// A lookup succeeds when the envelope code is 0. Any other code is a
// registry answer and its msg is returned as a registry error.
package registry
