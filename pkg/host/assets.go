package host

// Bundle describes a named style or script the host asset pipeline loads.
type Bundle struct {
	Handle  string   `json:"handle"`
	Kind    string   `json:"kind"`
	Path    string   `json:"path"`
	Version string   `json:"version,omitempty"`
	Deps    []string `json:"deps,omitempty"`
	Footer  bool     `json:"footer,omitempty"`
}

// Bundle kinds.
const (
	KindStyle  = "style"
	KindScript = "script"
)

// AdminBundles lists the assets the admin form expects. suffix is ".min" in
// production and "" when debugging scripts.
func AdminBundles(baseURL, version, suffix string) []Bundle {
	return []Bundle{
		{Handle: "font-awesome", Kind: KindStyle, Path: "//maxcdn.bootstrapcdn.com/font-awesome/4.5.0/css/font-awesome.min.css", Version: "4.5.0"},
		{Handle: "wpcw-admin", Kind: KindStyle, Path: baseURL + "css/admin" + suffix + ".css", Version: version, Deps: []string{"font-awesome"}},
		{Handle: "wpcw-admin", Kind: KindScript, Path: baseURL + "js/admin" + suffix + ".js", Version: version, Deps: []string{"jquery"}, Footer: true},
	}
}

// FrontEndBundles lists the assets the front-end display expects.
func FrontEndBundles(baseURL, version, suffix string) []Bundle {
	return []Bundle{
		{Handle: "wpcw", Kind: KindStyle, Path: baseURL + "css/style" + suffix + ".css", Version: version},
	}
}
