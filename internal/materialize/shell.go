package materialize

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vic/van/internal/registry"
)

// buildShell materializes a development shell activation script. Inputs:
// `packages` (dependency names whose store paths are prepended to PATH),
// `env` (exported verbatim) and `greeting` (printed on activation).
func buildShell(_ context.Context, req *registry.Request) (*registry.Artifact, error) {
	packages, err := stringSliceInput(req, "packages")
	if err != nil {
		return nil, err
	}
	env, err := stringMapInput(req, "env")
	if err != nil {
		return nil, err
	}
	greeting, hasGreeting, err := stringInput(req, "greeting")
	if err != nil {
		return nil, err
	}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&script, "# Generated by van for %s. Do not edit.\n", req.Platform)

	for _, line := range trustExports(req.Config) {
		script.WriteString(line + "\n")
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&script, "export %s=%q\n", key, env[key])
	}

	if len(packages) > 0 {
		prefixes := make([]string, 0, len(packages))
		for _, pkg := range packages {
			pin, err := resolvePin(req, pkg)
			if err != nil {
				return nil, err
			}
			prefixes = append(prefixes, pin.StorePath+"/bin")
		}
		fmt.Fprintf(&script, "PATH=%q\n", strings.Join(prefixes, ":")+":$PATH")
		script.WriteString("export PATH\n")
	}

	if hasGreeting {
		fmt.Fprintf(&script, "printf '%%s\\n' %q\n", greeting)
	}

	return &registry.Artifact{
		Kind:     req.Kind,
		Name:     req.Name,
		FileName: "shell-" + req.Name + ".sh",
		Content:  []byte(script.String()),
		Mode:     0o755,
	}, nil
}
