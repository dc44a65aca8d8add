// Package cli wires the collaborators into cobra commands.
package cli

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/techoraye/cachyos-kde-optimization-recipe/internal/version"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/config"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/configline"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/dispatcher"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/hostcap"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/logging"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/platform"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/recipes"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/sequencer"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/ui/prompt"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/ui/style"
)

//go:embed about.md
var aboutDoc string

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		noConfirm bool
	)

	rootCmd := &cobra.Command{
		Use:   "cachykde",
		Short: "Interactive CachyOS KDE installer and optimizer",
		Long: `cachykde configures a CachyOS KDE desktop through a simple menu:
repositories, GPU drivers, audio stack, KDE and performance tweaks.
Every destructive step asks for confirmation first.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation drops into the menu.
			return runMenu(dryRun, noConfirm)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().BoolVar(&noConfirm, "noconfirm", false, "Auto-approve every confirmation (for unattended runs)")

	rootCmd.AddCommand(newMenuCmd(&dryRun, &noConfirm))
	rootCmd.AddCommand(newAutoCmd(&dryRun, &noConfirm))
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAboutCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newMenuCmd(dryRun, noConfirm *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Pick optimizations from an interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(*dryRun, *noConfirm)
		},
	}
}

func newAutoCmd(dryRun, noConfirm *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Run the whole recipe in order without a menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuto(*dryRun, *noConfirm)
		},
	}
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Show detected host capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession(false, false)
			if err != nil {
				return err
			}
			caps := hostcap.NewDetector(sess.GPU, sess.Audio).Detect(sess)
			fmt.Printf("GPU vendor:   %s\n", caps.GPU)
			fmt.Printf("Audio server: %s\n", caps.Audio)
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := config.Load()
			if err != nil {
				return err
			}
			out, err := config.Dump(k)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newAboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "What this tool does and how to use it",
		RunE: func(cmd *cobra.Command, args []string) error {
			styleOpt := glamour.WithStandardStyle("light")
			if style.HasDarkBackground() {
				styleOpt = glamour.WithStandardStyle("dark")
			}
			renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(80))
			if err != nil {
				fmt.Print(aboutDoc)
				return nil
			}
			out, err := renderer.Render(aboutDoc)
			if err != nil {
				fmt.Print(aboutDoc)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cachykde version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}

func runMenu(dryRun, noConfirm bool) error {
	sess, err := newSession(dryRun, noConfirm)
	if err != nil {
		return err
	}

	actions, _ := recipes.Build(sess)
	d := dispatcher.New(actions, prompt.NewConsoleMenu())
	if err := d.Run(sess); err != nil {
		return err
	}

	if results := sess.Results(); len(results) > 0 {
		fmt.Println()
		fmt.Print(style.RenderResults("Session summary", results))
	}
	return nil
}

func runAuto(dryRun, noConfirm bool) error {
	sess, err := newSession(dryRun, noConfirm)
	if err != nil {
		return err
	}

	actions, _ := recipes.Build(sess)
	report := sequencer.New(actions).Run(sess, recipes.Sequence(sess))

	fmt.Println()
	fmt.Print(style.RenderResults("Auto-pilot summary", report.Results))
	if report.Cancelled {
		pterm.Info.Println("Run cancelled at a confirmation prompt; no further steps were attempted.")
	}
	return nil
}

// newSession checks the prerequisites and wires the live collaborators.
// Setup failures here are the only fatal errors in the program.
func newSession(dryRun, noConfirm bool) (*types.Session, error) {
	for _, tool := range []string{"pacman", "sudo"} {
		if err := platform.LookPath(tool); err != nil {
			return nil, err
		}
	}

	k, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSetup, "could not load configuration")
	}

	runner := platform.NewRunner(dryRun)
	pacman := platform.NewPacman(runner)

	return &types.Session{
		Ctx:      context.Background(),
		Pkgs:     pacman,
		Mutator:  pacman,
		Services: platform.NewSystemd(runner),
		GPU:      platform.NewLspciEnumerator(runner),
		Audio:    platform.NewPactlEnumerator(runner),
		Lines:    configline.NewWriter(dryRun),
		Gate:     prompt.NewConsoleGate(noConfirm),
		Config:   k,
		Options:  types.Options{DryRun: dryRun, NoConfirm: noConfirm},
	}, nil
}
