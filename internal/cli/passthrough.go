package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/utils"
)

// gitCommandAllowlist names the bare git subcommands regraft passes through
// untouched. Subcommands regraft owns itself (merge, status, log) are
// deliberately absent so the regraft version always wins.
var gitCommandAllowlist = []string{
	"add",
	"am",
	"apply",
	"archive",
	"bisect",
	"blame",
	"branch",
	"bundle",
	"checkout",
	"cherry-pick",
	"clean",
	"clone",
	"commit",
	"diff",
	"difftool",
	"fetch",
	"format-patch",
	"fsck",
	"grep",
	"mv",
	"notes",
	"pull",
	"push",
	"range-diff",
	"rebase",
	"reflog",
	"remote",
	"request-pull",
	"reset",
	"restore",
	"revert",
	"rm",
	"show",
	"send-email",
	"sparse-checkout",
	"stash",
	"submodule",
	"switch",
	"tag",
}

// HandlePassthrough checks if the command should be passed through to git
// and executes it if so. Returns true if the command was handled (and the
// program should exit).
func HandlePassthrough(args []string) bool {
	if len(args) < 2 {
		return false
	}

	if !utils.ContainsString(gitCommandAllowlist, args[1]) {
		return false
	}

	gitArgs := args[1:]

	fmt.Fprintf(os.Stderr, "\033[90mPassing command through to git...\033[0m\n")
	fmt.Fprintf(os.Stderr, "\033[90mRunning: \"git %s\"\033[0m\n\n", strings.Join(gitArgs, " "))

	if err := git.RunGitCommandInteractive(gitArgs...); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			os.Exit(exitError.ExitCode())
		}
		os.Exit(1)
	}
	os.Exit(0)
	return true
}
