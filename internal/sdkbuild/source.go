package sdkbuild

import (
	"errors"
	"fmt"
	"strings"
)

// Environment variables read by SourceFromEnv.
const (
	EnvPath       = "CHIP_PATH"
	EnvRepository = "CHIP_REPOSITORY"
	EnvVersion    = "CHIP_VERSION"
)

const (
	DefaultRepository = "https://github.com/project-chip/connectedhomeip"
	DefaultVersion    = "branch:v1.0-branch"

	// installDir is the managed checkout root under the workspace.
	installDir = ".embuild/chip"
	reposDir   = "repos"
)

// ErrInvalidGitRef is returned for an empty or malformed ref.
var ErrInvalidGitRef = errors.New("sdkbuild: invalid git ref")

// RefKind classifies a GitRef.
type RefKind int

const (
	RefBranch RefKind = iota
	RefTag
	RefCommit
)

func (k RefKind) String() string {
	switch k {
	case RefBranch:
		return "branch"
	case RefTag:
		return "tag"
	case RefCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// GitRef names a branch, tag or commit.
type GitRef struct {
	Kind RefKind
	Name string
}

func (r GitRef) String() string {
	return r.Kind.String() + ":" + r.Name
}

// ParseGitRef parses "branch:x", "tag:x", "commit:x" or a bare ref. Bare
// refs of 7 to 40 hex digits are commits; anything else is a branch.
func ParseGitRef(s string) (GitRef, error) {
	s = strings.TrimSpace(s)
	kind, name, found := strings.Cut(s, ":")
	if !found {
		if s == "" {
			return GitRef{}, ErrInvalidGitRef
		}
		if isCommitHash(s) {
			return GitRef{Kind: RefCommit, Name: s}, nil
		}
		return GitRef{Kind: RefBranch, Name: s}, nil
	}
	if name == "" {
		return GitRef{}, fmt.Errorf("%w: %q", ErrInvalidGitRef, s)
	}
	switch kind {
	case "branch":
		return GitRef{Kind: RefBranch, Name: name}, nil
	case "tag":
		return GitRef{Kind: RefTag, Name: name}, nil
	case "commit":
		if !isCommitHash(name) {
			return GitRef{}, fmt.Errorf("%w: %q is not a commit hash", ErrInvalidGitRef, name)
		}
		return GitRef{Kind: RefCommit, Name: name}, nil
	default:
		return GitRef{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidGitRef, kind)
	}
}

func isCommitHash(s string) bool {
	if len(s) < 7 || len(s) > 40 {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// Source says where the SDK comes from: a custom checkout when Path is set,
// otherwise a managed clone of Repository at Ref.
type Source struct {
	Path       string
	Repository string
	Ref        GitRef
}

// Managed reports whether the SDK is cloned by the builder.
func (s Source) Managed() bool {
	return s.Path == ""
}

// SourceFromEnv reads CHIP_PATH, CHIP_REPOSITORY and CHIP_VERSION through
// getenv.
func SourceFromEnv(getenv func(string) string) (Source, error) {
	if p := getenv(EnvPath); p != "" {
		return Source{Path: p}, nil
	}
	src := Source{Repository: getenv(EnvRepository)}
	if src.Repository == "" {
		src.Repository = DefaultRepository
	}
	version := getenv(EnvVersion)
	if version == "" {
		version = DefaultVersion
	}
	ref, err := ParseGitRef(version)
	if err != nil {
		return Source{}, err
	}
	src.Ref = ref
	return src, nil
}

// checkoutDirName maps a ref to a directory name under the managed root.
func checkoutDirName(ref GitRef) string {
	r := strings.NewReplacer("/", "_", ":", "_", "\\", "_")
	return r.Replace(ref.String())
}
