package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckExists(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name      string
		setup     func(string) error
		wantExist bool
		wantError bool
	}{
		{
			name: "database exists",
			setup: func(path string) error {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				return f.Close()
			},
			wantExist: true,
			wantError: false,
		},
		{
			name: "database does not exist",
			setup: func(path string) error {
				return nil
			},
			wantExist: false,
			wantError: false,
		},
		{
			name: "database path is directory",
			setup: func(path string) error {
				return os.Mkdir(path, 0755)
			},
			wantExist: false,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDir := filepath.Join(tmpDir, tt.name)
			if err := os.Mkdir(testDir, 0755); err != nil {
				t.Fatalf("failed to create test dir: %v", err)
			}

			dbPath := filepath.Join(testDir, "database.db")
			if err := tt.setup(dbPath); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			exists, err := CheckExists(dbPath)

			if tt.wantError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if exists != tt.wantExist {
				t.Errorf("got exists=%v, want %v", exists, tt.wantExist)
			}
		})
	}
}

func TestFileSize(t *testing.T) {
	tmpDir := t.TempDir()

	dbPath := filepath.Join(tmpDir, "database.db")
	size, err := FileSize(dbPath)
	if err != nil {
		t.Fatalf("FileSize on missing file: %v", err)
	}
	if size != 0 {
		t.Errorf("got size=%d for missing file, want 0", size)
	}

	if err := os.WriteFile(dbPath, []byte("0123456789"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	size, err = FileSize(dbPath)
	if err != nil {
		t.Fatalf("FileSize failed: %v", err)
	}
	if size != 10 {
		t.Errorf("got size=%d, want 10", size)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateMissing, "missing"},
		{StateUninitialized, "uninitialized"},
		{StateDirty, "dirty"},
		{StateOutdated, "outdated"},
		{StateReady, "ready"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
