package web

import (
	"io"
	"testing"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatalf("Templates returned error: %v", err)
	}
	for _, name := range []string{"home.html", "post_job.html", "coming_soon.html", "head", "header", "foot"} {
		if tmpl.Lookup(name) == nil {
			t.Errorf("template %q not defined", name)
		}
	}
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"/app.css", "/app.js"} {
		f, err := Static().Open(name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		b, _ := io.ReadAll(f)
		f.Close()
		if len(b) == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
