package actions

import (
	"context"
	"fmt"

	"regraft.dev/regraft/internal/config"
	"regraft.dev/regraft/internal/engine"
	"regraft.dev/regraft/internal/git"
	"regraft.dev/regraft/internal/tui"
	"regraft.dev/regraft/internal/utils"
)

// commonBaselineNames are tried in order when the remote HEAD gives no answer
var commonBaselineNames = []string{"develop", "main", "master", "trunk"}

// InitOptions are options for the init command
type InitOptions struct {
	Baseline      string
	Remote        string
	PickLimit     int
	FileLimit     int
	NoAutoBackup  bool
	NoInteractive bool
}

// InferBaseline attempts to infer the baseline branch: the remote HEAD if it
// exists locally, else the first commonly used integration branch name
func InferBaseline(ctx context.Context, branchNames []string, remote string) string {
	if remoteHead := git.RemoteHeadBranch(ctx, remote); remoteHead != "" {
		if utils.ContainsString(branchNames, remoteHead) {
			return remoteHead
		}
	}

	for _, name := range commonBaselineNames {
		if utils.ContainsString(branchNames, name) {
			return name
		}
	}

	return ""
}

// InitAction initializes regraft in the current repository. It runs before
// any engine exists, so it takes only a logger.
func InitAction(ctx context.Context, splog *tui.Splog, opts InitOptions) error {
	if err := git.InitDefaultRepo(); err != nil {
		return fmt.Errorf("not a git repository: %w", err)
	}

	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return fmt.Errorf("failed to get repo root: %w", err)
	}
	git.SetWorkingDir(repoRoot)

	branchNames, err := git.GetAllBranchNames()
	if err != nil {
		return fmt.Errorf("failed to get branches: %w", err)
	}
	if len(branchNames) == 0 {
		return fmt.Errorf("no branches found in current repo; cannot initialize regraft.\nPlease create your first commit and then re-run regraft init")
	}

	remote := opts.Remote
	if remote == "" {
		remote = config.DefaultRemote
	}
	if hasRemote, err := git.HasRemote(ctx, remote); err == nil && !hasRemote {
		splog.Warn("Remote %s is not configured; pushing with %s will not work until it is added.",
			remote, tui.ColorCyan("regraft submit"))
	}

	baseline := opts.Baseline
	if baseline == "" {
		baseline = InferBaseline(ctx, branchNames, remote)

		if baseline == "" {
			if opts.NoInteractive || !utils.IsInteractive() {
				return fmt.Errorf("could not infer the baseline branch; pass one with --baseline")
			}
			selected, err := tui.PromptBranchSelection("Select the baseline branch changes land onto", branchNames, 0)
			if err != nil {
				return err
			}
			baseline = selected
		}
	}

	if !utils.ContainsString(branchNames, baseline) {
		return fmt.Errorf("branch '%s' not found", baseline)
	}

	wasInitialized := config.IsInitialized(repoRoot)

	cfg, err := config.GetRepoConfig(repoRoot)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Baseline = &baseline
	cfg.Remote = &remote
	if opts.PickLimit > 0 {
		cfg.PickLimit = &opts.PickLimit
	}
	if opts.FileLimit > 0 {
		cfg.FileLimit = &opts.FileLimit
	}
	if opts.NoAutoBackup {
		autoBackup := false
		cfg.AutoBackup = &autoBackup
	}
	if err := config.SaveRepoConfig(repoRoot, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if wasInitialized {
		splog.Info("Reinitializing regraft...")
	} else {
		splog.Info("Welcome to regraft!")
	}
	splog.Newline()
	splog.Info("Baseline set to %s", tui.ColorBranchName(baseline, false))

	prefix, err := config.GetLandingPrefix(repoRoot)
	if err == nil {
		splog.Info("Landing branches will be created under %s", tui.ColorDim(prefix))
	}

	// Building the engine validates the configuration end to end
	if _, err := engine.NewEngine(repoRoot); err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	splog.Info("regraft initialized successfully!")
	return nil
}
