// Package cli is the interactive doctrack command-line client.
//
// App.Run starts a read-eval-print loop over the gRPC API. Document
// content never passes through the server: uploads and downloads go
// straight to the presigned object storage URLs it hands out.
package cli
