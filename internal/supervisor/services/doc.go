// Songbird - Fuzzy Catalog Search for Music Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/songbird

/*
Package services adapts long-running components to suture.Service.

  - HTTPServerService: ListenAndServe plus graceful Shutdown on cancel
  - CatalogSyncService: Start/Shutdown of the catalog consumer, restarted
    by suture when its router exits

Each wrapper implements fmt.Stringer so suture can name it in logs.
*/
package services
