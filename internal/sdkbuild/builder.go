package sdkbuild

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pion/logging"
)

// ErrSDKNotFound is returned when a custom SDK path is not a directory.
var ErrSDKNotFound = errors.New("sdkbuild: SDK checkout not found")

// linuxPkgLibs are the system libraries the Linux platform layer links.
var linuxPkgLibs = []string{"glib-2.0", "gobject-2.0", "gio-2.0"}

// CommandRunner runs external programs.
type CommandRunner interface {
	// Run executes name in dir and returns its standard output.
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return out, fmt.Errorf("sdkbuild: %s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// Config configures a Builder.
type Config struct {
	Source   Source
	Features Features

	// Workspace holds the managed checkout under .embuild/chip.
	Workspace string

	// OutDir receives the gn output and the app config.
	OutDir string

	// GlueDir is the directory with the BUILD.gn of the glue library.
	GlueDir string

	// IncludeDir holds the binding's own headers.
	IncludeDir string

	// Standalone selects the Linux standalone platform. Defaults to true on
	// Linux.
	Standalone *bool

	Runner        CommandRunner
	LoggerFactory logging.LoggerFactory
}

// Artifacts are the outputs a cgo build consumes.
type Artifacts struct {
	SDKDir      string
	OutDir      string
	IncludeDirs []string
	Libs        []string
	LibDirs     []string
}

// CgoFlags renders the CGO_CFLAGS and CGO_LDFLAGS values.
func (a *Artifacts) CgoFlags() (cflags, ldflags string) {
	inc := make([]string, len(a.IncludeDirs))
	for i, d := range a.IncludeDirs {
		inc[i] = "-I" + d
	}
	var ld []string
	for _, d := range a.LibDirs {
		ld = append(ld, "-L"+d)
	}
	for _, l := range a.Libs {
		ld = append(ld, "-l"+l)
	}
	return strings.Join(inc, " "), strings.Join(ld, " ")
}

// Builder builds the SDK.
type Builder struct {
	config Config
	runner CommandRunner
	log    logging.LeveledLogger
}

// NewBuilder creates a Builder.
func NewBuilder(config Config) (*Builder, error) {
	if config.Features.Endpoints == 0 {
		config.Features.Endpoints = DefaultEndpoints
	}
	if err := config.Features.Validate(); err != nil {
		return nil, err
	}
	if config.Workspace == "" {
		config.Workspace = "."
	}
	if config.OutDir == "" {
		config.OutDir = filepath.Join(config.Workspace, "out", "chip")
	}
	if config.GlueDir == "" {
		config.GlueDir = filepath.Join(config.Workspace, "lib")
	}
	if config.IncludeDir == "" {
		config.IncludeDir = filepath.Join(config.Workspace, "include")
	}
	if config.Standalone == nil {
		standalone := runtime.GOOS == "linux"
		config.Standalone = &standalone
	}
	if config.Runner == nil {
		config.Runner = ExecRunner{}
	}
	if config.LoggerFactory == nil {
		config.LoggerFactory = logging.NewDefaultLoggerFactory()
	}
	return &Builder{
		config: config,
		runner: config.Runner,
		log:    config.LoggerFactory.NewLogger("sdkbuild"),
	}, nil
}

// Build resolves the SDK, writes the app config, runs gn and ninja, and
// collects the artifacts.
func (b *Builder) Build(ctx context.Context) (*Artifacts, error) {
	sdk, err := b.ResolveSDK(ctx)
	if err != nil {
		return nil, err
	}
	outDir, err := filepath.Abs(b.config.OutDir)
	if err != nil {
		return nil, err
	}
	configDir := filepath.Join(outDir, "app_config")
	if err := b.WriteAppConfig(configDir); err != nil {
		return nil, err
	}

	b.log.Infof("Building SDK %s into %s (%s)", sdk, outDir, b.config.Features)
	if _, err := b.runner.Run(ctx, "", "bash", "-c", b.Script(sdk, outDir, configDir)); err != nil {
		return nil, err
	}

	return b.collect(ctx, sdk, outDir)
}

// ResolveSDK returns the SDK directory, cloning the managed checkout when
// needed.
func (b *Builder) ResolveSDK(ctx context.Context) (string, error) {
	src := b.config.Source
	if !src.Managed() {
		info, err := os.Stat(src.Path)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrSDKNotFound, src.Path)
		}
		return filepath.Abs(src.Path)
	}

	root := filepath.Join(b.config.Workspace, installDir, reposDir)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", fmt.Errorf("sdkbuild: %w", err)
	}
	dir, err := filepath.Abs(filepath.Join(root, checkoutDirName(src.Ref)))
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		b.log.Debugf("Using managed SDK at %s", dir)
		return dir, nil
	}

	repo := src.Repository
	if repo == "" {
		repo = DefaultRepository
	}
	b.log.Infof("Cloning %s (%s) into %s", repo, src.Ref, dir)
	switch src.Ref.Kind {
	case RefBranch, RefTag:
		_, err = b.runner.Run(ctx, "", "git", "clone", "--depth", "1", "--branch", src.Ref.Name, repo, dir)
	default:
		if _, err = b.runner.Run(ctx, "", "git", "clone", repo, dir); err == nil {
			_, err = b.runner.Run(ctx, dir, "git", "checkout", src.Ref.Name)
		}
	}
	if err != nil {
		return "", err
	}
	if _, err := b.runner.Run(ctx, dir, "git", "submodule", "update", "--init", "--recursive"); err != nil {
		return "", err
	}
	return dir, nil
}

// WriteAppConfig writes CHIPProjectAppConfig.h into dir.
func (b *Builder) WriteAppConfig(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sdkbuild: %w", err)
	}
	path := filepath.Join(dir, "CHIPProjectAppConfig.h")
	if err := os.WriteFile(path, []byte(b.config.Features.AppConfigHeader()), 0o644); err != nil {
		return fmt.Errorf("sdkbuild: %w", err)
	}
	return nil
}

// Script returns the shell script that activates the SDK environment and
// runs gn and ninja.
func (b *Builder) Script(sdk, outDir, configDir string) string {
	var s strings.Builder
	s.WriteString("set -e\n")
	fmt.Fprintf(&s, "export CHIP_PATH=%s\n", shellQuote(sdk))
	fmt.Fprintf(&s, "export PROJ_CONFIG_INCLUDE_PATH=%s\n", shellQuote(configDir))
	fmt.Fprintf(&s, ". %s\n", shellQuote(filepath.Join(sdk, "scripts", "activate.sh")))
	fmt.Fprintf(&s, "cd %s\n", shellQuote(b.config.GlueDir))
	fmt.Fprintf(&s, "gn gen %s --args=%s\n", shellQuote(outDir), shellQuote(b.config.Features.GNArgs(*b.config.Standalone)))
	fmt.Fprintf(&s, "ninja -C %s\n", shellQuote(outDir))
	return s.String()
}

func (b *Builder) collect(ctx context.Context, sdk, outDir string) (*Artifacts, error) {
	a := &Artifacts{
		SDKDir: sdk,
		OutDir: outDir,
		IncludeDirs: []string{
			filepath.Join(outDir, "app_config"),
			filepath.Join(outDir, "gen", "include"),
			b.config.IncludeDir,
			filepath.Join(b.config.GlueDir, "include"),
		},
		Libs:    []string{"CHIPALL", "stdc++", "crypto"},
		LibDirs: []string{outDir},
	}

	third := filepath.Join(sdk, "third_party")
	platform := "esp32"
	if *b.config.Standalone {
		platform = "standalone"
	}
	a.IncludeDirs = append(a.IncludeDirs,
		filepath.Join(sdk, "config", platform),
		filepath.Join(sdk, "zzz_generated", "bridge-app"),
		filepath.Join(sdk, "zzz_generated", "app-common"),
		filepath.Join(sdk, "src", "include"),
		filepath.Join(sdk, "src"),
		filepath.Join(third, "nlassert", "repo", "include"),
		filepath.Join(third, "nlio", "repo", "include"),
	)

	if *b.config.Standalone {
		a.IncludeDirs = append(a.IncludeDirs, filepath.Join(third, "inipp", "repo", "inipp"))
		if err := b.addPkgConfig(ctx, a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// addPkgConfig appends the flags pkg-config reports for the platform
// libraries.
func (b *Builder) addPkgConfig(ctx context.Context, a *Artifacts) error {
	args := append([]string{"--cflags", "--libs"}, linuxPkgLibs...)
	out, err := b.runner.Run(ctx, "", "pkg-config", args...)
	if err != nil {
		return err
	}
	for _, f := range strings.Fields(string(out)) {
		switch {
		case strings.HasPrefix(f, "-I"):
			a.IncludeDirs = appendUnique(a.IncludeDirs, f[2:])
		case strings.HasPrefix(f, "-L"):
			a.LibDirs = appendUnique(a.LibDirs, f[2:])
		case strings.HasPrefix(f, "-l"):
			a.Libs = appendUnique(a.Libs, f[2:])
		}
	}
	return nil
}

func appendUnique(list []string, v string) []string {
	for _, e := range list {
		if e == v {
			return list
		}
	}
	return append(list, v)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
