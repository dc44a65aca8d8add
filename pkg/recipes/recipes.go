// Package recipes registers the concrete menu actions: repository
// enablement, driver and audio stacks, KDE and performance tweaks. The
// package lists and config lines live in pkg/config; this package only
// wires them to the collaborators on the session.
package recipes

import (
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/conflict"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/config"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/errors"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/hostcap"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/registry"
	"github.com/techoraye/cachyos-kde-optimization-recipe/pkg/types"
)

// Action identifiers. Typed constants are the dispatch keys; the menu
// shows the labels.
const (
	EnableCachyOSRepos types.ActionID = "enable-cachyos-repos"
	EnableMultilib     types.ActionID = "enable-multilib"
	SystemUpdate       types.ActionID = "system-update"
	InstallGPUDrivers  types.ActionID = "install-gpu-drivers"
	InstallPipeWire    types.ActionID = "install-pipewire"
	InstallPulseAudio  types.ActionID = "install-pulseaudio"
	KDEOptimizations   types.ActionID = "kde-optimizations"
	PerformanceTweaks  types.ActionID = "performance-tweaks"
	InstallGamingMeta  types.ActionID = "install-gaming-meta"
	EnableBluetooth    types.ActionID = "enable-bluetooth"
)

// GroupAudio is the mutually exclusive audio backend group.
const GroupAudio types.Group = "audio"

// Build registers every recipe action and the conflict group members, and
// returns the registry alongside the resolver. Registration order is menu
// order.
func Build(sess *types.Session) (*registry.Actions, *conflict.Resolver) {
	actions := registry.NewActions()
	resolver := conflict.NewResolver()

	resolver.AddMember(GroupAudio, InstallPipeWire, sess.Config.Strings("packages.pipewire"))
	resolver.AddMember(GroupAudio, InstallPulseAudio, sess.Config.Strings("packages.pulseaudio"))

	actions.MustRegisterAction(types.Action{
		ID:    EnableCachyOSRepos,
		Label: "Enable CachyOS repositories",
		Run:   enableCachyOSRepos,
	})
	actions.MustRegisterAction(types.Action{
		ID:    EnableMultilib,
		Label: "Enable the multilib repository",
		Run:   enableMultilib,
	})
	actions.MustRegisterAction(types.Action{
		ID:    SystemUpdate,
		Label: "Update the system",
		Run: func(s *types.Session) error {
			return s.Mutator.Refresh(s.Context(), true)
		},
	})
	actions.MustRegisterAction(types.Action{
		ID:    InstallGPUDrivers,
		Label: "Install GPU drivers (auto-detected)",
		Run:   installGPUDrivers,
	})
	actions.MustRegisterAction(types.Action{
		ID:    InstallPipeWire,
		Label: "Install PipeWire audio stack",
		Group: GroupAudio,
		Run: func(s *types.Session) error {
			return installAudio(s, resolver, InstallPipeWire, "packages.pipewire",
				s.Config.String("services.pipewire_user"))
		},
	})
	actions.MustRegisterAction(types.Action{
		ID:    InstallPulseAudio,
		Label: "Install PulseAudio audio stack",
		Group: GroupAudio,
		Run: func(s *types.Session) error {
			return installAudio(s, resolver, InstallPulseAudio, "packages.pulseaudio", "")
		},
	})
	actions.MustRegisterAction(types.Action{
		ID:    KDEOptimizations,
		Label: "Apply KDE Plasma optimizations",
		Run:   kdeOptimizations,
	})
	actions.MustRegisterAction(types.Action{
		ID:    PerformanceTweaks,
		Label: "Apply performance tweaks (sysctl, zram)",
		Run:   performanceTweaks,
	})
	actions.MustRegisterAction(types.Action{
		ID:    InstallGamingMeta,
		Label: "Install gaming packages (needs multilib)",
		Run:   installGamingMeta,
	})
	actions.MustRegisterAction(types.Action{
		ID:    EnableBluetooth,
		Label: "Enable bluetooth",
		Run:   enableBluetooth,
	})

	return actions, resolver
}

// Sequence returns the configured auto-pilot order.
func Sequence(sess *types.Session) []types.ActionID {
	names := sess.Config.Strings("autopilot.sequence")
	ids := make([]types.ActionID, len(names))
	for i, n := range names {
		ids[i] = types.ActionID(n)
	}
	return ids
}

func enableCachyOSRepos(s *types.Session) error {
	path := s.Config.String("paths.pacman_conf")
	outcome, err := s.Lines.EnsureSection(path, "cachyos",
		[]string{s.Config.String("repos.cachyos.server")})
	if err != nil {
		return err
	}
	if outcome == types.LineAlreadyPresent {
		return nil
	}
	return s.Mutator.Refresh(s.Context(), false)
}

func enableMultilib(s *types.Session) error {
	path := s.Config.String("paths.pacman_conf")
	outcome, err := s.Lines.EnsureSection(path, "multilib",
		[]string{s.Config.String("repos.multilib.include")})
	if err != nil {
		return err
	}
	if outcome == types.LineAlreadyPresent {
		return nil
	}
	return s.Mutator.Refresh(s.Context(), false)
}

func installGPUDrivers(s *types.Session) error {
	caps := hostcap.NewDetector(s.GPU, s.Audio).Detect(s)

	var key string
	switch caps.GPU {
	case hostcap.VendorNVIDIA:
		key = "packages.nvidia"
	case hostcap.VendorAMD:
		key = "packages.amd"
	case hostcap.VendorIntel:
		key = "packages.intel"
	default:
		// Never guess a driver stack: installing the wrong one can
		// leave the host without a display.
		return errors.New(errors.ErrNotFound,
			"could not detect a supported GPU vendor; pick a driver set manually")
	}

	return s.Mutator.Install(s.Context(), s.Config.Strings(key))
}

func installAudio(s *types.Session, resolver *conflict.Resolver, id types.ActionID, pkgKey, userUnit string) error {
	if err := resolver.Resolve(s, GroupAudio, id); err != nil {
		return err
	}
	if err := s.Mutator.Install(s.Context(), s.Config.Strings(pkgKey)); err != nil {
		return err
	}
	if userUnit != "" {
		return s.Services.Enable(s.Context(), userUnit, true)
	}
	return nil
}

func kdeOptimizations(s *types.Session) error {
	if err := s.Mutator.Install(s.Context(), s.Config.Strings("packages.kde")); err != nil {
		return err
	}

	kwinrc := config.ExpandHome(s.Config.String("paths.kwinrc"))
	for _, line := range s.Config.Strings("tweaks.kwin") {
		if _, err := s.Lines.EnsureLinePresent(kwinrc, line); err != nil {
			return err
		}
	}
	return nil
}

func performanceTweaks(s *types.Session) error {
	path := s.Config.String("paths.sysctl_conf")
	for _, line := range s.Config.Strings("tweaks.sysctl") {
		if _, err := s.Lines.EnsureLinePresent(path, line); err != nil {
			return err
		}
	}

	if err := s.Mutator.Install(s.Context(), s.Config.Strings("packages.zram")); err != nil {
		return err
	}
	return s.Services.Enable(s.Context(), s.Config.String("services.zram"), false)
}

func installGamingMeta(s *types.Session) error {
	pkgs := s.Config.Strings("packages.gaming")
	if len(pkgs) == 0 {
		return nil
	}

	// Steam only exists in multilib; skip with a reason instead of
	// failing a transaction pacman cannot resolve.
	available, err := s.Pkgs.QueryRepo(s.Context(), pkgs[0])
	if err != nil {
		return err
	}
	if !available {
		return errors.Newf(errors.ErrNotFound,
			"'%s' not found in any enabled repository; enable multilib first", pkgs[0])
	}

	return s.Mutator.Install(s.Context(), pkgs)
}

func enableBluetooth(s *types.Session) error {
	if err := s.Mutator.Install(s.Context(), s.Config.Strings("packages.bluetooth")); err != nil {
		return err
	}
	return s.Services.Enable(s.Context(), s.Config.String("services.bluetooth"), false)
}
