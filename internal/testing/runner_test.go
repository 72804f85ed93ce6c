package testing

import (
	"os/exec"
	"strings"
	"testing"
)

func TestFakeCLIRecordsCalls(t *testing.T) {
	f := NewFakeCLI(t).Fail("release patch stable", 3, "boom\n")

	if err := exec.Command(f.Binary, "login", "acme").Run(); err != nil {
		t.Fatalf("login: %v", err)
	}
	out, err := exec.Command(f.Binary, "release", "patch", "stable").CombinedOutput()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 3 {
		t.Fatalf("release error = %v, want exit 3", err)
	}
	if strings.TrimSpace(string(out)) != "boom" {
		t.Errorf("output = %q, want boom", out)
	}

	f.Assert().
		Called("login acme", "release patch stable").
		NotCalled("promote").
		LastCall("release patch stable")
}

func TestFakeCLIOnPath(t *testing.T) {
	NewFakeCLI(t).OnPath().Assert().CalledNothing()

	path, err := exec.LookPath("vtex")
	if err != nil {
		t.Fatalf("LookPath() error = %v", err)
	}
	if !strings.HasSuffix(path, "vtex") {
		t.Errorf("LookPath() = %q", path)
	}
}

func TestKey(t *testing.T) {
	if got := key("workspace delete production"); got != "workspace_delete_production" {
		t.Errorf("key() = %q", got)
	}
	if got := key("install vtex.admin-graphql-ide@3.x"); got != "install_vtex_admin_graphql_ide_3_x" {
		t.Errorf("key() = %q", got)
	}
}
