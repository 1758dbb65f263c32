// Package integration contains the Integration bounded context.
// This context manages the upstream shopping APIs that supply product rankings.
//
// Key concepts:
//   - RankingSource: Port interface for fetching a ranked product batch from a platform
//   - RankingQuery: Value object describing what to fetch (category, paging, sort, free text)
//   - ConfigurationError / UpstreamError: the two failure kinds an adapter can report
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
