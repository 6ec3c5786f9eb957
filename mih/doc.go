// Package mih is an in-memory similarity index for fixed-length binary
// fingerprints (perceptual hashes such as PDQ).
//
// An Index accepts hex-encoded hashes tagged with categories, then
// freezes into a queryable structure that finds every indexed hash
// within a Hamming distance of a query hash. Below a configured
// threshold it uses Multi-Index Hashing (Norouzi et al.) to make
// retrieval sublinear in corpus size; above the threshold it falls
// back to a bounded linear scan.
package mih
