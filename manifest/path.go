package manifest

import "strings"

// PathComponent is a single, non-empty, slash-free segment of a RepoPath.
type PathComponent string

// RepoPath is a repository-relative path: an ordered sequence of
// PathComponents. The zero value is the empty path, naming the repository
// root.
type RepoPath struct {
	components []PathComponent
}

// RepoPathFromString splits s on '/' into a RepoPath. An empty string yields
// the empty (root) path. Consecutive slashes and leading/trailing slashes
// are rejected: callers are expected to pass already-clean repository
// paths, not filesystem paths.
func RepoPathFromString(s string) (RepoPath, error) {
	if s == "" {
		return RepoPath{}, nil
	}
	parts := strings.Split(s, "/")
	components := make([]PathComponent, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return RepoPath{}, errorf("RepoPathFromString", "%q: empty path component", s)
		}
		components = append(components, PathComponent(p))
	}
	return RepoPath{components: components}, nil
}

// MustRepoPath is RepoPathFromString but panics on error. Intended for tests
// and for literal paths known to be valid at compile time.
func MustRepoPath(s string) RepoPath {
	p, err := RepoPathFromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Empty reports whether this is the root path.
func (p RepoPath) Empty() bool {
	return len(p.components) == 0
}

// String renders the path the way RepoPathFromString parses it.
func (p RepoPath) String() string {
	ss := make([]string, len(p.components))
	for i, c := range p.components {
		ss[i] = string(c)
	}
	return strings.Join(ss, "/")
}

// Len returns the number of components.
func (p RepoPath) Len() int {
	return len(p.components)
}

// Component returns the i-th component.
func (p RepoPath) Component(i int) PathComponent {
	return p.components[i]
}

// Join appends a component, returning a new path. The receiver is not
// modified.
func (p RepoPath) Join(c PathComponent) RepoPath {
	next := make([]PathComponent, len(p.components)+1)
	copy(next, p.components)
	next[len(p.components)] = c
	return RepoPath{components: next}
}

// SplitLastComponent returns the parent path and the final component. It
// returns ok=false for the empty path.
func (p RepoPath) SplitLastComponent() (parent RepoPath, last PathComponent, ok bool) {
	if p.Empty() {
		return RepoPath{}, "", false
	}
	n := len(p.components)
	return RepoPath{components: p.components[:n-1]}, p.components[n-1], true
}

// Compare returns -1, 0 or 1 according to whether p sorts before, the same
// as, or after q, comparing component by component.
func (p RepoPath) Compare(q RepoPath) int {
	for i := 0; i < len(p.components) && i < len(q.components); i++ {
		if p.components[i] != q.components[i] {
			if p.components[i] < q.components[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(p.components) < len(q.components):
		return -1
	case len(p.components) > len(q.components):
		return 1
	default:
		return 0
	}
}

// step is one (parent, component) pair as yielded while walking a path from
// the root towards a leaf.
type step struct {
	parent    RepoPath
	component PathComponent
}

// steps returns, for path p = c1/.../cn, the pairs
// (∅, c1), (c1, c2), ..., (c1/.../cn-1, cn).
func (p RepoPath) steps() []step {
	out := make([]step, len(p.components))
	for i, c := range p.components {
		out[i] = step{
			parent:    RepoPath{components: p.components[:i]},
			component: c,
		}
	}
	return out
}
