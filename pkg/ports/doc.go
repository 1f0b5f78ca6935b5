/*
Package ports defines the driven ports (interfaces) for argtree.

These interfaces decouple the matching core from the adapters around it, so history can be
kept in memory or in Redis and the HTTP surface can serve any matcher.

# Key Interfaces

  - Matcher: Runs matching for an argument vector against a schema.
  - HistoryStore: Persists a record of every dispatch, listed newest first.

RunHistoryStoreContract is the shared test suite every HistoryStore must pass.
*/
package ports
