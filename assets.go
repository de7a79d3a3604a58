// Package widgetform ships the static assets the admin form and front-end
// markup expect.
package widgetform

import (
	"embed"
	"io/fs"
)

//go:embed assets/css/*.css assets/js/*.js
var embeddedAssets embed.FS

// AssetsFS exposes the admin and front-end bundles named by host.AdminBundles
// and host.FrontEndBundles, rooted so paths read "css/admin.min.css".
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(widgetform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
