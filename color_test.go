package lloggs

import "testing"

func TestNoColorBeatsAlways(t *testing.T) {
	o := Options{Color: ColorAlways}
	env := envOf(map[string]string{"NO_COLOR": "1"})
	if o.resolveColor(env, true) {
		t.Fatal("NO_COLOR set but colors enabled")
	}
}

func TestNoColorBeatsClicolorForce(t *testing.T) {
	o := Options{Color: ColorAuto}
	env := envOf(map[string]string{"NO_COLOR": "x", "CLICOLOR_FORCE": "1"})
	if o.resolveColor(env, true) {
		t.Fatal("NO_COLOR set but colors enabled")
	}
}

func TestClicolorForceEnablesColor(t *testing.T) {
	o := Options{Color: ColorAuto}
	env := envOf(map[string]string{"CLICOLOR_FORCE": "1"})
	if !o.resolveColor(env, false) {
		t.Fatal("CLICOLOR_FORCE set but colors disabled on non-terminal")
	}
}

func TestColorFlagModes(t *testing.T) {
	cases := []struct {
		mode        ColorMode
		interactive bool
		want        bool
	}{
		{ColorAlways, false, true},
		{ColorNever, true, false},
		{ColorAuto, true, true},
		{ColorAuto, false, false},
	}
	for _, c := range cases {
		o := Options{Color: c.mode}
		if got := o.resolveColor(noEnv, c.interactive); got != c.want {
			t.Fatalf("mode=%s interactive=%v: got %v, want %v", c.mode, c.interactive, got, c.want)
		}
	}
}
