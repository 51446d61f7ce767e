// Package media enumerates video capture devices and selects the camera used
// for a recording attempt.
//
// Enumeration reads /sys/class/video4linux; selection prefers user-facing
// cameras by name and falls back to the first node. Neither step caches
// results, so hotplugged or released devices are observed on the next attempt.
package media
