// chip-build builds the CHIP SDK for the bridge and prints the cgo flags.
//
// The SDK is taken from CHIP_PATH, or cloned into .embuild/chip from
// CHIP_REPOSITORY at CHIP_VERSION.
//
// Usage:
//
//	chip-build [options]
//	chip-build -generate path/to/header.h -pkg chip -o zz_constants.go
//
// Options:
//
//	-features   SDK features (default: endpoints-4)
//	-workspace  Workspace root (default: .)
//	-out        Build output directory (default: <workspace>/out/chip)
//	-dry-run    Print the build script instead of running it
//	-generate   Generate Go constants from a header and exit
//	-pkg        Package name of generated constants (default: chip)
//	-o          Output file of generated constants (default: stdout)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/backkem/matterbridge/internal/sdkbuild"
)

func main() {
	features := sdkbuild.DefaultFeatures()
	flag.Func("features", "SDK features, e.g. ble,wifi,endpoints-16", func(s string) error {
		f, err := sdkbuild.ParseFeatures(s)
		features = f
		return err
	})
	workspace := flag.String("workspace", ".", "Workspace root")
	out := flag.String("out", "", "Build output directory")
	dryRun := flag.Bool("dry-run", false, "Print the build script instead of running it")
	header := flag.String("generate", "", "Generate Go constants from this header")
	pkg := flag.String("pkg", "chip", "Package name of generated constants")
	output := flag.String("o", "", "Output file of generated constants")
	flag.Parse()

	if *header != "" {
		if err := generate(*header, *pkg, *output); err != nil {
			log.Fatalf("Failed to generate constants: %v", err)
		}
		return
	}

	src, err := sdkbuild.SourceFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid SDK source: %v", err)
	}
	b, err := sdkbuild.NewBuilder(sdkbuild.Config{
		Source:    src,
		Features:  features,
		Workspace: *workspace,
		OutDir:    *out,
	})
	if err != nil {
		log.Fatalf("Failed to create builder: %v", err)
	}

	if *dryRun {
		outDir := *out
		if outDir == "" {
			outDir = filepath.Join(*workspace, "out", "chip")
		}
		sdk := src.Path
		if src.Managed() {
			sdk = fmt.Sprintf("<managed %s>", src.Ref)
		}
		fmt.Print(b.Script(sdk, outDir, filepath.Join(outDir, "app_config")))
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	artifacts, err := b.Build(ctx)
	if err != nil {
		log.Fatalf("Build failed: %v", err)
	}
	cflags, ldflags := artifacts.CgoFlags()
	fmt.Printf("CGO_CFLAGS=%q\n", cflags)
	fmt.Printf("CGO_LDFLAGS=%q\n", ldflags)
}

func generate(header, pkg, output string) error {
	f, err := os.Open(header)
	if err != nil {
		return err
	}
	defer f.Close()

	src, err := sdkbuild.GenerateConstants(f, sdkbuild.Vars, pkg)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	return os.WriteFile(output, src, 0o644)
}
