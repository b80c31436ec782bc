package materialize

import (
	"context"
	"fmt"
	"strings"

	"github.com/vic/van/internal/registry"
)

// buildFormatter materializes a formatter driver script. Inputs: `tools`
// (commands invoked in order, each receiving the driver's arguments) and
// `packages` (dependencies whose store paths are prepended to PATH so the
// tools resolve).
func buildFormatter(_ context.Context, req *registry.Request) (*registry.Artifact, error) {
	tools, err := stringSliceInput(req, "tools")
	if err != nil {
		return nil, err
	}
	if len(tools) == 0 {
		return nil, fmt.Errorf("artifact %s: input %q must list at least one tool", artifactRef(req), "tools")
	}

	packages, err := stringSliceInput(req, "packages")
	if err != nil {
		return nil, err
	}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&script, "# Generated by van for %s. Do not edit.\n", req.Platform)
	script.WriteString("set -e\n")

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

	for _, tool := range tools {
		fmt.Fprintf(&script, "%s \"$@\"\n", tool)
	}

	return &registry.Artifact{
		Kind:     req.Kind,
		Name:     req.Name,
		FileName: "fmt-" + req.Name + ".sh",
		Content:  []byte(script.String()),
		Mode:     0o755,
	}, nil
}
