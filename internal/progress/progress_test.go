package progress

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectTerminalCapabilitiesNonTTY(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stream"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	caps := DetectTerminalCapabilities(f)
	if caps.IsTTY || caps.SupportsSpinner || caps.SupportsUnicode {
		t.Fatalf("regular file reported as terminal: %+v", caps)
	}
}

func TestDetectTerminalCapabilitiesNilFile(t *testing.T) {
	if caps := DetectTerminalCapabilities(nil); caps.SupportsSpinner {
		t.Fatalf("nil file reported spinner support: %+v", caps)
	}
}

func TestCharSet(t *testing.T) {
	tests := []struct {
		name string
		caps TerminalCapabilities
		want int
	}{
		{name: "Unicode", caps: TerminalCapabilities{SupportsUnicode: true}, want: 14},
		{name: "ASCII", caps: TerminalCapabilities{}, want: 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.caps.charSet(); got != tt.want {
				t.Fatalf("charSet() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewWithoutTerminalIsNoop(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	ind := New()
	if _, ok := ind.(Noop); !ok {
		t.Fatalf("New() = %T, want Noop when NO_COLOR is set", ind)
	}
	ind.Start("working")
	ind.Stop()
}
