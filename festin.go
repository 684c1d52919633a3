// Package festin discovers publicly readable cloud storage buckets.
// Starting from a set of seed domains it probes each domain for an S3
// bucket listing, crawls its web pages for linked hosts and resolves its
// CNAME chain, feeding every new host back into a bounded crawl frontier.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., etree/, goquery/, dns/, redis/).
package festin
