package route

import (
	"reflect"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{[]string{"root"}, "/root"},
		{[]string{"root", "c-abc", "c-def"}, "/root/c-abc/c-def"},
		{nil, "/"},
	}
	for _, tt := range tests {
		if got := Encode(tt.path); got != tt.want {
			t.Errorf("Encode(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     []string
	}{
		{"plain", "/root/c-abc", []string{"root", "c-abc"}},
		{"hash prefix", "#/root/c-abc", []string{"root", "c-abc"}},
		{"no leading slash", "root/c-abc", []string{"root", "c-abc"}},
		{"double slashes", "/root//c-abc/", []string{"root", "c-abc"}},
		{"empty", "", nil},
		{"just slash", "/", nil},
		{"whitespace", "  #/root  ", []string{"root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.fragment); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	path := []string{"root", "c-x2f4", "c-9kk2"}
	if got := Parse(Encode(path)); !reflect.DeepEqual(got, path) {
		t.Errorf("round trip = %v, want %v", got, path)
	}
}
