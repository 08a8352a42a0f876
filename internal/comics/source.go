// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package comics

import "context"

// # Content Source Contract

// Source produces the raw, unsorted comic collection from a backing store.
//
// Two implementations exist — [FileSource] over a content directory and
// [PostgresSource] over the hosted database — selected once at composition
// time in cmd/api. The collection is always rebuilt wholesale; a Source
// never mutates previously returned slices.
type Source interface {

	/*
		Load returns every comic visible in the backing store.

		Parameters:
		  - ctx: context.Context

		Returns:
		  - []*Comic: The raw collection (empty slice is a valid outcome)
		  - error: A collection-level failure; partial results are never returned
	*/
	Load(ctx context.Context) ([]*Comic, error)
}
