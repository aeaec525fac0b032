// Package domain contains the core domain entities and types used by the
// application. These types represent the business concepts (usernames, the
// exception and unfollowed sets, per-account options, scan results and
// unfollow progress) and are intentionally free of infrastructure concerns so
// they can be shared across packages.
package domain
