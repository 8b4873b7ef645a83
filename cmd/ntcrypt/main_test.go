package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestHashCommand(t *testing.T) {
	code, out, errOut := runCLI(t, "password\n", "hash")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if want := "$3$8846f7eaee8fb117ad06bdd830b7586c\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestHashCommandWithoutTrailingNewline(t *testing.T) {
	code, out, _ := runCLI(t, "123456", "hash")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if want := "$3$32ed87bdb5fdc5e9cba88547376818d4\n"; out != want {
		t.Fatalf("stdout = %q, want %q", out, want)
	}
}

func TestHashCommandRejectsForeignSetting(t *testing.T) {
	code, out, errOut := runCLI(t, "password\n", "hash", "-setting", "$1$abcdefgh")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
	if !strings.Contains(errOut, "invalid setting") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestGenSaltCommand(t *testing.T) {
	code, out, _ := runCLI(t, "", "gensalt")
	if code != 0 || out != "$3$\n" {
		t.Fatalf("gensalt = (%d, %q)", code, out)
	}

	code, _, _ = runCLI(t, "", "gensalt", "-count", "5")
	if code != 1 {
		t.Fatalf("gensalt -count 5 exit code = %d, want 1", code)
	}
}

func TestVerifyCommand(t *testing.T) {
	code, out, _ := runCLI(t, "password\n", "verify", "-hash", "$3$8846f7eaee8fb117ad06bdd830b7586c")
	if code != 0 || out != "ok\n" {
		t.Fatalf("verify match = (%d, %q)", code, out)
	}

	code, out, _ = runCLI(t, "wrong\n", "verify", "-hash", "$3$8846f7eaee8fb117ad06bdd830b7586c")
	if code != 1 || out != "mismatch\n" {
		t.Fatalf("verify mismatch = (%d, %q)", code, out)
	}

	code, _, _ = runCLI(t, "password\n", "verify", "-hash", "$3$nothex")
	if code != 2 {
		t.Fatalf("verify malformed exit code = %d, want 2", code)
	}
}

func TestVerifyCommandLegacyEncoding(t *testing.T) {
	code, out, _ := runCLI(t, "password\n", "verify", "-hash", "$3$$8846f7eaee8fb117ad06bdd830b7586c")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "store $3$8846f7eaee8fb117ad06bdd830b7586c") {
		t.Fatalf("expected upgrade hint, got %q", out)
	}
}

func TestMetricsAndAuditFlags(t *testing.T) {
	code, _, errOut := runCLI(t, "password\n", "-metrics", "-audit", "verify", "-id", "alice", "-hash", "$3$8846f7eaee8fb117ad06bdd830b7586c")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, errOut)
	}
	if !strings.Contains(errOut, "ntcrypt_verify_match_total 1") {
		t.Fatalf("expected metrics output, got %q", errOut)
	}
	if !strings.Contains(errOut, `"identifier":"alice"`) {
		t.Fatalf("expected audit line, got %q", errOut)
	}
}

func TestUnknownCommand(t *testing.T) {
	if code, _, _ := runCLI(t, "", "frobnicate"); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if code, _, _ := runCLI(t, ""); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}
