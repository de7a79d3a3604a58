package widgetform

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-widgetform/pkg/host"
)

func TestAssetsFSServesEveryBundle(t *testing.T) {
	fsys := AssetsFS()

	for _, suffix := range []string{"", ".min"} {
		bundles := append(host.AdminBundles("", "1.0", suffix), host.FrontEndBundles("", "1.0", suffix)...)
		for _, bundle := range bundles {
			if strings.HasPrefix(bundle.Path, "//") {
				continue
			}
			if _, err := fs.ReadFile(fsys, bundle.Path); err != nil {
				t.Fatalf("expected %s to be embedded: %v", bundle.Path, err)
			}
		}
	}
}

func TestAdminScriptDefinesChangeHandler(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "js/admin.js")
	if err != nil {
		t.Fatalf("read admin script: %v", err)
	}
	if !strings.Contains(string(data), "wpcw.change = function") {
		t.Fatalf("expected admin script to define wpcw.change")
	}
}
