package raw

import "testing"

func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " csvconnector ")
	t.Setenv("LOG_LEVEL", " warn ")

	root := New()
	lg := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root hit", conf: root, key: "APP_NAME", def: "x", want: "csvconnector"},
		{name: "prefixed hit", conf: lg, key: "LEVEL", def: "x", want: "warn"},
		{name: "missing returns default", conf: lg, key: "MISSING", def: "defv", want: "defv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("B_")
	cases := map[string]bool{"1": true, "TRUE": true, "yes": true, "on": true, "0": false, "nope": false}
	for in, want := range cases {
		t.Setenv("B_FLAG", in)
		if got := c.GetBool("FLAG", !want); got != want {
			t.Fatalf("GetBool(%q) = %v, want %v", in, got, want)
		}
	}
	if !c.GetBool("MISSING", true) {
		t.Fatalf("GetBool default not used")
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("N_")
	t.Setenv("N_OK", " 42 ")
	t.Setenv("N_BAD", "4x")
	t.Setenv("N_NEG", "-3")
	if got := c.GetInt("OK", 1); got != 42 {
		t.Fatalf("GetInt ok = %d", got)
	}
	if got := c.GetInt("BAD", 7); got != 7 {
		t.Fatalf("GetInt bad = %d, want default", got)
	}
	if got := c.GetInt("NEG", 7); got != 7 {
		t.Fatalf("GetInt negative = %d, want default", got)
	}
	if got := c.GetInt("MISSING", 9); got != 9 {
		t.Fatalf("GetInt missing = %d, want default", got)
	}
}
