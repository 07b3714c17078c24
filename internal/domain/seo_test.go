package domain

import "testing"

func TestNormalizeSeoPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/trips/siwa/", "/trips/siwa/"},
		{"trips/siwa/", "/trips/siwa/"},
		{"  /about/  ", "/about/"},
		{"/blog//post///x/", "/blog/post/x/"},
		{"", ""},
		{"/", "/"},
	}
	for _, tc := range cases {
		if got := NormalizeSeoPath(tc.in); got != tc.want {
			t.Errorf("NormalizeSeoPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStaticPageTablesAgree(t *testing.T) {
	for code := range StaticPagePaths {
		if _, ok := StaticPageMeta[code]; !ok {
			t.Errorf("page code %q has a path but no meta defaults", code)
		}
	}
	for code := range StaticPageMeta {
		if _, ok := StaticPagePaths[code]; !ok {
			t.Errorf("page code %q has meta defaults but no path", code)
		}
	}
}
