package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "derange.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.N() != 9 || cfg.Width() != 3 || cfg.Trials != DefaultTrials {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if b, _ := cfg.SeedBytes(); b != nil {
		t.Errorf("expected no seed got %x", b)
	}
}

func TestLoad(t *testing.T) {
	path := write(t, `
board: 9
trials: 50000
seed: "00ff"
count_initial: true
hash: highway
verbosity: 1
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.N() != 81 || cfg.Trials != 50000 || !cfg.CountInitial || cfg.Hash != "highway" || cfg.Verbosity != 1 {
		t.Errorf("unexpected config %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.History != DefaultHistory {
		t.Errorf("expected %d got %d", DefaultHistory, cfg.History)
	}
	if b, _ := cfg.SeedBytes(); len(b) != 2 || b[1] != 0xff {
		t.Errorf("expected 00ff got %x", b)
	}
}

func TestItems(t *testing.T) {
	cfg, err := Load(write(t, "items: 7\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.N() != 7 || cfg.Width() != 0 {
		t.Errorf("expected 7 items on a free layout got %d/%d", cfg.N(), cfg.Width())
	}
}

func TestInvalid(t *testing.T) {
	cases := []string{
		"board: 0\n",
		"trials: -1\n",
		"hash: md5\n",
		"seed: xyz\n",
		"items: -3\n",
	}
	for _, c := range cases {
		if _, err := Load(write(t, c)); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%q: expected %v got %v", c, ErrInvalidConfig, err)
		}
	}

	if _, err := Load(write(t, "board: [")); err == nil {
		t.Errorf("expected a parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected %v got %v", os.ErrNotExist, err)
	}
}
