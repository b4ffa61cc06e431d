package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := Load("")
	is.NoErr(err)
	is.Equal(cfg.Episodes, 1000)
	is.Equal(cfg.Threads, 1)
	is.Equal(cfg.Alpha, 0.003125)
	is.Equal(cfg.WinTile, 17)
	is.Equal(cfg.Rule, "fibonacci")
	is.True(!cfg.Shell)
}

func TestLoadYAMLFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	is.NoErr(os.WriteFile(path, []byte("episodes: 50\nalpha: 0.1\nrule: classic\n"), 0644))

	cfg, err := Load(path)
	is.NoErr(err)
	is.Equal(cfg.Episodes, 50)
	is.Equal(cfg.Alpha, 0.1)
	is.Equal(cfg.Rule, "classic")
	is.Equal(cfg.Threads, 1) // default survives partial files
}

func TestLoadMissingFileFails(t *testing.T) {
	is := is.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	is.True(err != nil)
}

func TestLoadRejectsBadCounts(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	is.NoErr(os.WriteFile(path, []byte("threads: 0\n"), 0644))
	_, err := Load(path)
	is.True(err != nil)
}

func TestArgStrings(t *testing.T) {
	is := is.New(t)

	cfg := &Config{Alpha: 0.1, Seed: 9, LoadPath: "/tmp/w.bin"}
	is.Equal(cfg.PlayerArgs(), "alpha=0.1 seed=9 load=/tmp/w.bin")
	is.Equal(cfg.EnvArgs(), "seed=10")

	cfg = &Config{Alpha: 0}
	is.Equal(cfg.PlayerArgs(), "alpha=0")
	is.Equal(cfg.EnvArgs(), "")
}
