// Package files moves whole files over HTTP: multipart uploads and downloads
// streamed to disk.
//
// Downloads land in a hidden partial file next to the destination and are
// renamed into place only after a 2xx response has been fully written. On
// any failure the partial file is removed, so the destination path never
// holds a truncated body.
package files
