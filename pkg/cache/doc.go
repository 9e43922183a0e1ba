// Package cache remembers amplifiers the client has previously discovered.
//
// Scanning for a BLE amplifier takes several seconds, and on some platforms the
// operating system reports devices by an unstable or opaque identifier. Storing
// an address once it's known lets command-line tools reconnect by name without
// rescanning. If a cached address turns out to be stale (e.g., because the
// adapter was replaced on a platform that uses adapter-relative identifiers),
// connecting will fail and the client falls back to a fresh scan, so an
// outdated DeviceCache never costs more than not having one.
//
// The cache stores only addresses, display names, and timestamps; it contains
// no credentials.
package cache
