package flagx

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "single and double dash are the same flag",
			args:    []string{"--c", "one.json", "-config=two.json"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--c", "one.json", "-config=two.json"},
		},
		{
			name:    "allowed names without dashes",
			args:    []string{"-t", "5s", "-x"},
			allowed: []string{"t"},
			want:    []string{"-t", "5s"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional", "c"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next flag is not taken as value",
			args:    []string{"-c", "--config=alt.json"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "--config=alt.json"},
		},
		{
			name:    "value after equals may start with a dash",
			args:    []string{"--config=--weird.json"},
			allowed: []string{"--config"},
			want:    []string{"--config=--weird.json"},
		},
		{
			name:    "repeated flag keeps order",
			args:    []string{"-c", "one.json", "-a", ":8000", "-c", "two.json"},
			allowed: []string{"-c", "-a"},
			want:    []string{"-c", "one.json", "-a", ":8000", "-c", "two.json"},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"-a", ":8000", "--", "-c", "x.json"},
			allowed: []string{"-c", "-a"},
			want:    []string{"-a", ":8000"},
		},
		{
			name:    "lone dash is not a flag",
			args:    []string{"-", "-c", "x.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "x.json"},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("FilterArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlagName(t *testing.T) {
	cases := map[string]string{
		"-a":          "a",
		"--config=x":  "config",
		"-t=5s":       "t",
		"positional":  "",
		"-":           "",
		"":            "",
		"--sort=desc": "sort",
	}
	for in, want := range cases {
		assert.Equal(t, want, flagName(in), in)
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long --config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "--config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})

	t.Run("none given", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1"}
		assert.Empty(t, JsonConfigFlags())
	})
}

func TestConfigPath_IgnoresServerFlags(t *testing.T) {
	args := []string{"-a", ":8000", "-k", "access-secret", "-config=/etc/vidtube.json", "-redis", "cache:6379"}
	assert.Equal(t, "/etc/vidtube.json", ConfigPath(args))
	assert.Empty(t, ConfigPath([]string{"-a", ":8000"}))
}
