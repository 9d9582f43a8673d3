// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

/*
Package supervisor runs the long-lived services of the search process under
a suture v4 tree.

	RootSupervisor ("songbird")
	├── MessagingSupervisor ("messaging-layer")
	│   └── CatalogSyncService (if NATS_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's exponential backoff. Failure counts
are kept per layer, so a consumer that cannot reach NATS does not cost the
HTTP server its restart budget.

Supervisor events (start, failure, backoff) are logged through sutureslog
into the zerolog pipeline:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
	    logging.Warn().Int("count", len(report)).Msg("Services did not stop in time")
	}

Service wrappers live in the services subpackage.
*/
package supervisor
