package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCheckInput(t *testing.T) {
	testCases := []struct {
		input       string
		maxLen      int
		wantErr     error
		description string
	}{
		{"Clos", 60, nil, "plain prefix"},
		{"", 60, nil, "empty prefix is allowed"},
		{"Shape of You", 5, ErrInputTooLong, "over the limit"},
		{"Shape of You", 0, nil, "limit disabled"},
		{"Fa\x00ded", 60, ErrControlChars, "nul byte"},
		{"Faded\n", 60, ErrControlChars, "newline"},
		{"Save\tYour Tears", 60, nil, "tab is tolerated"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := CheckInput(tc.input, tc.maxLen)
			if tc.wantErr == nil && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestIsSingleByte(t *testing.T) {
	if !IsSingleByte("Havana") {
		t.Error("expected ASCII title to be single byte")
	}
	if IsSingleByte("Despacíto") {
		t.Error("expected accented title to be flagged")
	}
}

func TestFormatWithCommas(t *testing.T) {
	testCases := map[int]string{
		0:        "0",
		95:       "95",
		1000:     "1,000",
		65535:    "65,535",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
	}
	for n, want := range testCases {
		if got := FormatWithCommas(n); got != want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestCreateRankList(t *testing.T) {
	if got := CreateRankList(0); len(got) != 0 {
		t.Errorf("expected empty ranks, got %v", got)
	}
	got := CreateRankList(3)
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", got)
	}
}

func TestGetDataFile(t *testing.T) {
	work := t.TempDir()
	exec := t.TempDir()
	conf := t.TempDir()

	inWork := filepath.Join(work, "seed.toml")
	inConf := filepath.Join(conf, "other.toml")
	for _, p := range []string{inWork, inConf} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	pr := &PathResolver{executableDir: exec, workingDir: work, configDir: conf}

	if got, err := pr.GetDataFile("seed.toml"); err != nil || got != inWork {
		t.Errorf("expected %s, got %s (%v)", inWork, got, err)
	}
	if got, err := pr.GetDataFile("other.toml"); err != nil || got != inConf {
		t.Errorf("expected %s, got %s (%v)", inConf, got, err)
	}
	if got, err := pr.GetDataFile(inWork); err != nil || got != inWork {
		t.Errorf("expected absolute path to resolve, got %s (%v)", got, err)
	}
	if _, err := pr.GetDataFile("missing.toml"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
	if _, err := pr.GetDataFile(""); err == nil {
		t.Error("expected error for empty path")
	}
}
