package handoff

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
)

// ParentShellFunc reports the name of the parent shell, if known.
type ParentShellFunc func() string

// SetupConfig configures PrintSetup.
type SetupConfig struct {
	// DetectParent is consulted when $SHELL is unset.
	DetectParent ParentShellFunc
	// Executable is the bmdir binary to call; defaults to os.Executable.
	Executable string
}

// PrintSetup writes a shell function named bmdir that runs the picker with
// a private result file and cd's into the picked path.
// shellOverride forces the shell; otherwise it is detected.
func PrintSetup(w io.Writer, shellOverride string, cfg SetupConfig) error {
	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShellInternal(runtime.GOOS, os.Getenv, cfg.DetectParent)
	}
	shell = canonicalShellName(shell)

	exe := cfg.Executable
	if exe == "" {
		var err error
		exe, err = os.Executable()
		if err != nil {
			exe = "bmdir"
		}
	}
	quoted := quoteForShell(shell, exe)

	var err error
	switch shell {
	case "fish":
		_, err = fmt.Fprintf(w, `function bmdir
    if test (count $argv) -gt 0
        command %s $argv
        return $status
    end

    set -l result_file (mktemp)
    command %s --out "$result_file"
    set -l code $status
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set -l dest (cat "$result_file" 2>/dev/null)
        if test -d "$dest" 2>/dev/null
            builtin cd "$dest"
        end
    end
    rm -f "$result_file" 2>/dev/null
    return $code
end
`, quoted, quoted)
	case "pwsh":
		_, err = fmt.Fprintf(w, `function bmdir {
    param([Parameter(ValueFromRemainingArguments=$true)][string[]]$Args)
    if ($Args.Count -gt 0) {
        & %s @Args
        return
    }

    $resultFile = [System.IO.Path]::GetTempFileName()
    try {
        & %s --out $resultFile
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = Get-Content $resultFile -Raw -ErrorAction SilentlyContinue | ForEach-Object { $_.Trim() }
            if ((-not [string]::IsNullOrEmpty($dest)) -and (Test-Path $dest -PathType Container)) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`, quoted, quoted)
	default:
		// bash, zsh, sh, ksh and anything unknown get the POSIX function
		_, err = fmt.Fprintf(w, `bmdir() {
    if [ "$#" -gt 0 ]; then
        command %s "$@"
        return $?
    fi

    result_file=$(mktemp) || return 1
    command %s --out "$result_file"
    code=$?
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        if [ -d "$dest" ] 2>/dev/null; then
            cd "$dest"
        fi
    fi
    rm -f "$result_file" 2>/dev/null
    return $code
}
`, quoted, quoted)
	}
	return err
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	if shell := canonicalShellName(normalizeShellName(getenv("SHELL"))); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := canonicalShellName(normalizeShellName(parent())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		return "pwsh"
	}

	return "bash"
}

func canonicalShellName(name string) string {
	switch name {
	case "powershell":
		return "pwsh"
	default:
		return name
	}
}

// normalizeShellName reduces a shell path or command line to its base name.
func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	value = strings.ReplaceAll(value, "\\", "/")
	base := strings.ToLower(path.Base(value))
	base = strings.TrimSuffix(base, ".exe")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	for _, q := range []string{`"`, `'`} {
		if strings.HasPrefix(value, q) {
			value = value[1:]
			if idx := strings.Index(value, q); idx >= 0 {
				return value[:idx]
			}
			return value
		}
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}

// quoteForShell single-quotes s so the shell passes it through literally.
func quoteForShell(shell, s string) string {
	switch shell {
	case "fish":
		// Inside fish single quotes only \\ and \' are escapes
		s = strings.ReplaceAll(s, `\`, `\\`)
		return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	case "pwsh":
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	default:
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
}
