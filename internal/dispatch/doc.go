// Package dispatch implements the payload-dispatch front of the catalog:
// tagged XML documents in, tagged XML documents out, keyed by operation name.
//
// The pipeline for every operation is Extract → Resolve → Build:
//
//  1. [ExtractID] pulls the required integer field out of the request
//     document by its namespace-qualified tag name.
//  2. [Resolver] translates the operation into one of a fixed set of graph
//     traversals against an [EntityStore].
//  3. [Builder] serializes the result into a nested [Element] tree whose
//     shape mirrors the entity graph (user → playlists → songs).
//
// The builder only ever walks ownership edges. Back-references (playlist →
// user, song → playlist) are never emitted, which is what keeps the output
// tree finite even though the relational graph is bidirectional and, in the
// shared-membership variant, cyclic through the playlist_songs edge set.
//
// [Dispatcher] holds the operation table. It is stateless between calls;
// each invocation is a pure function of the request document and the store
// snapshot.
package dispatch
