// Package wprecover recovers a defunct WordPress site from a local mirror of
// archived HTML snapshots and re-assembles it into a WordPress eXtended RSS
// (WXR) export: posts and pages with title, body, publish date, taxonomy
// terms and attached media, deduplicated across near-identical snapshots.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, etree/, sqlite/).
package wprecover
