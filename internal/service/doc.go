// Package service implements the tccm commands.
//
// Each command is one sequential procedure that validates everything it can
// before touching the filesystem or the network:
//   - Configure: merge origin/user/email into the settings file
//   - SetVersion: settings gate, version check, write the stamp file
//   - Publish: settings gate, stamp check, archive, upload, remove archive
//   - Get: origin gate, component lookup, streamed download
//
// Failure policy for transfers:
//   - A failed upload keeps the archive in the staging directory and names
//     it in the error, so it can be inspected or uploaded by hand
//   - A failed download removes its partial file; the destination is only
//     written once the whole body has arrived
//
// Example Usage:
//
//	svc := service.New(service.Options{
//	    Store:    settings.NewStore(path, logger),
//	    Registry: registry.NewClient(httpClient),
//	    Logger:   logger,
//	})
//	result, err := svc.Publish(ctx, cwd)
package service
