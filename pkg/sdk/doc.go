// Package ratonica provides an embeddable Go client for vintage fashion
// similarity search with a search history store.
//
// The client runs the mock marketplace catalog in-process. History lives in
// memory by default, or in Redis/Valkey when a store is configured.
//
//	client, _ := ratonica.New(ctx, ratonica.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	res, _ := client.Search(ctx, ratonica.QueryText, "levi's 501 90s")
//	id, _ := client.SaveSearch(ctx, res)
//	recent, _ := client.RecentSearches(ctx, 10)
//
// Image queries go through an Analyzer. Without WithAnalyzer a stub is used
// that answers every image with the same description.
package ratonica
