// Package peoplesearch provides an embeddable client for the people-search
// directory backed by Redis with the RediSearch module.
//
// The client mirrors the HTTP API composition in-process: a local directory
// with substring search and name autocomplete, an optional external lookup
// provider consulted automatically when the directory comes up empty, and a
// layered query parser (rules first, optional LLM fallback).
//
//	client, _ := peoplesearch.New(ctx,
//	    peoplesearch.WithRedis("localhost:6379", ""),
//	    peoplesearch.WithLookup("https://lookup.internal"),
//	)
//	defer client.Close()
//
//	out := client.Search(ctx, "maria gonzalez oracle")
//	for _, p := range out.LocalMatches {
//	    fmt.Println(p.Name, p.Company)
//	}
//	for _, c := range out.ExternalCandidates {
//	    fmt.Println(c.Name, c.MatchScore, c.Tier)
//	}
//
// Type-ahead runs through an AutocompleteSession, which debounces keystrokes
// and drops responses that arrive out of order:
//
//	session := client.NewAutocompleteSession(peoplesearch.AutocompleteCallbacks{
//	    OnUpdate: func(ss []peoplesearch.Suggestion) { render(ss) },
//	})
//	session.Input(ctx, "mar")
package peoplesearch
