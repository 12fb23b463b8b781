//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
)

const versionPackage = "github.com/eventdisplay/disptrainer/pkg"

// Default target to run when none is specified
// If not set, running mage will list available targets
var Default = Build

// Build compiles every executable into ./bin
func Build() error {
	mg.Deps(BuildDisptrainer)
	mg.Deps(BuildMeasureCompression)
	fmt.Println("Compilation finished")
	return nil
}

func BuildDisptrainer() error {
	fmt.Println("Building disptrainer executable...")
	return buildExecutable("disptrainer")
}

func BuildMeasureCompression() error {
	fmt.Println("Building measureCompression executable...")
	return buildExecutable("measureCompression")
}

// Test runs the unit tests of every package.
func Test() error {
	cmd := exec.Command("go", "test", "./...")
	cmd.Env = cgoEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func buildExecutable(name string) error {
	ldflags := fmt.Sprintf("-X %s.Version=%s -X %s.GitSHA=%s",
		versionPackage, gitOutput("describe", "--tags", "--always", "--dirty"),
		versionPackage, gitOutput("rev-parse", "--short", "HEAD"))
	cmd := exec.Command("go", "build", "-ldflags", ldflags, "-o", "./bin/"+name, "./"+name)
	cmd.Env = cgoEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func cgoEnv() []string {
	ldflags := os.Getenv("CGO_LDFLAGS")
	cflags := os.Getenv("CGO_CFLAGS")
	return append(os.Environ(),
		"CGO_ENABLED=1",
		fmt.Sprintf("CGO_LDFLAGS=%s", ldflags),
		fmt.Sprintf("CGO_CFLAGS=%s", cflags))
}

func gitOutput(args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}
