package executor

import "strings"

// vars is the context threaded through a guide run.
type vars struct {
	envDir   string
	os       string
	arch     string
	ref      string
	source   string
	release  string
	replacer *strings.Replacer
}

func newVars(inv Invocation, goos, arch string) vars {
	v := vars{
		envDir:  inv.EnvDir,
		os:      goos,
		arch:    arch,
		ref:     inv.Package.PackageRef,
		source:  inv.Package.Source,
		release: inv.Package.Version,
	}
	v.replacer = strings.NewReplacer(
		"{YPMS_ENV_DIR}", v.envDir,
		"{OS}", v.os,
		"{ARCH}", v.arch,
		"{PACKAGE_REF}", v.ref,
		"{SOURCE_NAME}", v.source,
		"{RELEASE_ID}", v.release,
	)
	return v
}

// expand substitutes placeholders in s.
func (v vars) expand(s string) string {
	return v.replacer.Replace(s)
}

// environ returns the context as KEY=VALUE pairs for child processes.
func (v vars) environ() []string {
	return []string{
		"YPMS_ENV_DIR=" + v.envDir,
		"OS=" + v.os,
		"ARCH=" + v.arch,
		"PACKAGE_REF=" + v.ref,
		"SOURCE_NAME=" + v.source,
		"RELEASE_ID=" + v.release,
	}
}
