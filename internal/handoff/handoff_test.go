package handoff

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestResultPath(t *testing.T) {
	assert.Equal(t, ResultPath("/tmp/flag.txt", "/tmp/config.txt"), "/tmp/flag.txt")
	assert.Equal(t, ResultPath("", "/tmp/config.txt"), "/tmp/config.txt")
	assert.Equal(t, ResultPath("", ""), DefaultResultPath())
}

func TestDefaultResultPath(t *testing.T) {
	t.Setenv("TMPDIR", "/some/tmp")

	got := DefaultResultPath()

	assert.Equal(t, filepath.Dir(got), "/some/tmp")
	assert.Assert(t, strings.HasPrefix(filepath.Base(got), "bmdir_result_"))
	assert.Assert(t, strings.HasSuffix(got, ".txt"))
}

func TestWriteResult_Selected(t *testing.T) {
	file := filepath.Join(t.TempDir(), "result.txt")

	dest, err := WriteResult(file, "/srv/www", true)
	assert.NilError(t, err)
	assert.Equal(t, dest, "/srv/www")

	data, err := os.ReadFile(file)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "/srv/www")

	info, err := os.Stat(file)
	assert.NilError(t, err)
	assert.Equal(t, info.Mode().Perm(), os.FileMode(0600))
}

func TestWriteResult_CancelledFallsBackToCwd(t *testing.T) {
	file := filepath.Join(t.TempDir(), "result.txt")
	cwd, err := os.Getwd()
	assert.NilError(t, err)

	dest, err := WriteResult(file, "", false)
	assert.NilError(t, err)
	assert.Equal(t, dest, cwd)

	data, err := os.ReadFile(file)
	assert.NilError(t, err)
	assert.Equal(t, string(data), cwd)
}

func TestWriteResult_UnwritableFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "missing", "result.txt")

	_, err := WriteResult(file, "/srv", true)
	assert.ErrorContains(t, err, "write result file")
}

func TestPrintSetup(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"bmdir() {", `command '/usr/local/bin/bmdir' --out "$result_file"`, `cd "$dest"`}},
		{"zsh", []string{"bmdir() {", "mktemp"}},
		{"/usr/bin/fish", []string{"function bmdir", "builtin cd", `--out "$result_file"`}},
		{"powershell", []string{"function bmdir {", "Set-Location $dest", "--out $resultFile"}},
		{"tcsh", []string{"bmdir() {"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			err := PrintSetup(&buf, tt.shell, SetupConfig{Executable: "/usr/local/bin/bmdir"})
			assert.NilError(t, err)
			for _, want := range tt.want {
				assert.Check(t, is.Contains(buf.String(), want))
			}
		})
	}
}

func TestPrintSetup_QuotesExecutable(t *testing.T) {
	exe := `/opt/my "tools"/$HOME/` + "`x`/it's/bmdir"
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", `command '/opt/my "tools"/$HOME/` + "`x`" + `/it'\''s/bmdir' --out`},
		{"fish", `command '/opt/my "tools"/$HOME/` + "`x`" + `/it\'s/bmdir' --out`},
		{"pwsh", `& '/opt/my "tools"/$HOME/` + "`x`" + `/it''s/bmdir' --out`},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			err := PrintSetup(&buf, tt.shell, SetupConfig{Executable: exe})
			assert.NilError(t, err)
			assert.Check(t, is.Contains(buf.String(), tt.want))
		})
	}
}

func TestQuoteForShell(t *testing.T) {
	assert.Equal(t, quoteForShell("bash", "/usr/bin/bmdir"), "'/usr/bin/bmdir'")
	assert.Equal(t, quoteForShell("zsh", "a'b"), `'a'\''b'`)
	assert.Equal(t, quoteForShell("fish", `C:\bin\it's`), `'C:\\bin\\it\'s'`)
	assert.Equal(t, quoteForShell("pwsh", "it's"), "'it''s'")
}

func TestPrintSetup_DetectsShell(t *testing.T) {
	t.Setenv("SHELL", "/opt/homebrew/bin/fish")

	var buf bytes.Buffer
	err := PrintSetup(&buf, "", SetupConfig{Executable: "bmdir"})

	assert.NilError(t, err)
	assert.Assert(t, strings.HasPrefix(buf.String(), "function bmdir"))
}

func TestDetectShellInternal(t *testing.T) {
	tests := []struct {
		name          string
		goos          string
		envShell      string
		parent        func() string
		expectedShell string
	}{
		{
			name:          "uses SHELL when set",
			goos:          "linux",
			envShell:      "/bin/zsh",
			expectedShell: "zsh",
		},
		{
			name:          "falls back to parent shell",
			goos:          "linux",
			parent:        func() string { return "/usr/bin/bash" },
			expectedShell: "bash",
		},
		{
			name:          "parent powershell is canonical",
			goos:          "darwin",
			parent:        func() string { return `"C:\Program Files\PowerShell\powershell.exe" -NoLogo` },
			expectedShell: "pwsh",
		},
		{
			name:          "windows fallback",
			goos:          "windows",
			expectedShell: "pwsh",
		},
		{
			name:          "unix fallback",
			goos:          "linux",
			expectedShell: "bash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := func(key string) string {
				if key == "SHELL" {
					return tt.envShell
				}
				return ""
			}
			got := detectShellInternal(tt.goos, env, tt.parent)
			if got != tt.expectedShell {
				t.Fatalf("detectShellInternal() = %q, want %q", got, tt.expectedShell)
			}
		})
	}
}
