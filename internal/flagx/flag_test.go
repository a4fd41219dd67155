package flagx

import (
	"os"
	"testing"

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
			name:    "separate value form",
			args:    []string{"-a", "localhost:8080", "-x", "other"},
			allowed: []string{"-a"},
			want:    []string{"-a", "localhost:8080"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=cfg.json", "-a=addr"},
			allowed: []string{"--config"},
			want:    []string{"--config=cfg.json"},
		},
		{
			name:    "flag without value before another flag",
			args:    []string{"-v", "-a", "addr"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", "addr"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "addr"},
			allowed: nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-c", "conf.json", "-a", "ignored"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"testbin"}
	assert.Equal(t, "", JsonConfigFlags())
}
