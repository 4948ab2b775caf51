// Package pipeline loads sheet sources into snapshots.
//
// A load runs a fixed sequence of steps over a fresh model.Snapshot:
// fetch the gviz response, parse it, build member records, then aggregate
// per-party counts. Each step is a Step so the sequence can be extended or
// replaced with fakes in tests.
//
// Loader is the entry point for callers. It shares one in-flight load per
// source between concurrent callers and remembers the latest snapshot.
// BatchProcessor loads several sources with bounded concurrency and keeps
// results in input order.
package pipeline
