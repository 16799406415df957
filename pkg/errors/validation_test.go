package errors

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Offset", false},
		{"valid with space", "Y Value", false},
		{"valid with punctuation", "latency(ms)", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading space", " foo", true},
		{"trailing space", "foo ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("column", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateOutputDir(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative dir", "SimpleLine", false},
		{"nested dir", "out/plots", false},
		{"absolute dir", "/tmp/plots", false},
		{"dot prefix", "./plots", false},

		{"empty", "", true},
		{"current dir", ".", true},
		{"current dir slash", "./", true},
		{"root", "/", true},
		{"parent", "..", true},
		{"grandparent", "../..", true},
		{"null byte", "out\x00", true},
		{"dot segments to parent", "out/../..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputDir(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputDir(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputDirAbsoluteWorkingDir(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)

	for _, dir := range []string{wd, filepath.Dir(wd), wd + string(filepath.Separator)} {
		if err := ValidateOutputDir(dir); !Is(err, ErrCodeInvalidPath) {
			t.Errorf("ValidateOutputDir(%q) = %v, want %s", dir, err, ErrCodeInvalidPath)
		}
	}
	if err := ValidateOutputDir(filepath.Join(wd, "plots")); err != nil {
		t.Errorf("subdirectory of the working directory rejected: %v", err)
	}
}

func TestValidateOutputDirKeep(t *testing.T) {
	t.Chdir(t.TempDir())
	exp := filepath.Join(t.TempDir(), "exp")
	if err := os.MkdirAll(exp, 0o755); err != nil {
		t.Fatal(err)
	}
	data := filepath.Join(exp, "data.csv")
	plotFile := filepath.Join(exp, "p.toml")

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"holds plot file and data", exp, true},
		{"parent of both", filepath.Dir(exp), true},
		{"sibling", filepath.Join(filepath.Dir(exp), "plots"), false},
		{"child", filepath.Join(exp, "plots"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputDir(tt.dir, data, plotFile, "")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputDir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}
		})
	}
}
