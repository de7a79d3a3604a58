// Package host declares the collaborators the widget core consumes from the
// hosting CMS: field naming, option lookup, wrapper markup and the asset
// bundles the host is expected to load. The core never reaches for ambient
// state; adapters construct these values per request and pass them in.
package host
