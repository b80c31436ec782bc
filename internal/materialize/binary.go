package materialize

import (
	"context"
	"fmt"
	"strings"

	"github.com/vic/van/internal/registry"
)

// buildBinary materializes a wrapped executable launcher. Inputs:
// `package` (the dependency providing the program, required), `exec` (the
// program name inside the package's bin directory, defaults to the
// artifact name) and `paths` (extra dependencies prepended to PATH for the
// wrapped process).
func buildBinary(_ context.Context, req *registry.Request) (*registry.Artifact, error) {
	pkg, hasPkg, err := stringInput(req, "package")
	if err != nil {
		return nil, err
	}
	if !hasPkg {
		return nil, fmt.Errorf("artifact %s: input %q is required", artifactRef(req), "package")
	}

	execName, hasExec, err := stringInput(req, "exec")
	if err != nil {
		return nil, err
	}
	if !hasExec {
		execName = req.Name
	}

	extras, err := stringSliceInput(req, "paths")
	if err != nil {
		return nil, err
	}

	pin, err := resolvePin(req, pkg)
	if err != nil {
		return nil, err
	}

	prefixes := []string{pin.StorePath + "/bin"}
	for _, extra := range extras {
		extraPin, err := resolvePin(req, extra)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, extraPin.StorePath+"/bin")
	}

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&script, "# Generated by van for %s. Do not edit.\n", req.Platform)
	fmt.Fprintf(&script, "PATH=%q\n", strings.Join(prefixes, ":")+":$PATH")
	script.WriteString("export PATH\n")
	fmt.Fprintf(&script, "exec %q \"$@\"\n", pin.StorePath+"/bin/"+execName)

	return &registry.Artifact{
		Kind:     req.Kind,
		Name:     req.Name,
		FileName: execName,
		Content:  []byte(script.String()),
		Mode:     0o755,
	}, nil
}
