package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/chartkit/pkg/buildinfo"
)

func TestSetVersion(t *testing.T) {
	oldV, oldC, oldD := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	defer func() { buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldV, oldC, oldD }()

	SetVersion("1.0.0", "abc123", "2024-01-01")

	if buildinfo.Version != "1.0.0" {
		t.Errorf("Version = %q, want %q", buildinfo.Version, "1.0.0")
	}
	if buildinfo.Commit != "abc123" {
		t.Errorf("Commit = %q, want %q", buildinfo.Commit, "abc123")
	}
	if buildinfo.Date != "2024-01-01" {
		t.Errorf("Date = %q, want %q", buildinfo.Date, "2024-01-01")
	}
}

func TestSetVersionEmpty(t *testing.T) {
	oldV, oldC, oldD := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	defer func() { buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldV, oldC, oldD }()

	SetVersion("", "", "")

	if buildinfo.Version != oldV || buildinfo.Commit != oldC || buildinfo.Date != oldD {
		t.Error("empty values should keep the defaults")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&strings.Builder{}, LogInfo).RootCommand()

	for _, name := range []string{"render", "inspect", "charts", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag not registered")
	}
}
