package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/liftline/pkg/models"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSolveDefault(t *testing.T) {
	out, err := run(t, "solve", "--segments", "12", "--stations")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"converged", "CL", "CDi", "span efficiency", "gamma"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestSolveChart(t *testing.T) {
	png := filepath.Join(t.TempDir(), "chart.png")
	out, err := run(t, "solve", "--segments", "10", "--method", "relax", "--chart", "--width", "30", "--png", png)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "▀") {
		t.Error("chart not drawn")
	}
	if _, err := os.Stat(png); err != nil {
		t.Error(err)
	}
}

func TestSolveCaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.toml")
	src := "[wing]\nsegments = 10\nspan = 8.0\n\n[flow]\nalpha = 2.0\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "solve", path, "--alpha", "6")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "alpha 6 deg") {
		t.Errorf("flag did not override the case file:\n%s", out)
	}
}

func TestSolveRejectsBadInput(t *testing.T) {
	if _, err := run(t, "solve", "--method", "picard"); err == nil {
		t.Error("expected error for unknown method")
	}
	if _, err := run(t, "solve", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing case file")
	}
}

func TestSweep(t *testing.T) {
	out, err := run(t, "sweep", "--segments", "8", "--from", "0", "--to", "4", "--step", "2")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"CL/alpha", "polar"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if _, err := run(t, "sweep", "--step", "0"); err == nil {
		t.Error("expected error for zero step")
	}
}

func TestGeometry(t *testing.T) {
	out, err := run(t, "geometry", "--view", "top", "--width", "40")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"aspect ratio", "volume", "▀"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q", want)
		}
	}
	if _, err := run(t, "geometry", "--view", "side"); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wing.glb")
	if _, err := run(t, "export", "--segments", "6", "-o", path); err != nil {
		t.Fatal(err)
	}
	meshes, err := models.LoadGLB(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 2 || meshes[1].LineCount() != 24 {
		t.Errorf("unexpected export: %d meshes", len(meshes))
	}
}
