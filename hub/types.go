package hub

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// RepoRef identifies a HuggingFace repository.
type RepoRef struct {
	Owner string
	Name  string
	Ref   string // branch, tag or commit SHA; empty means "main"
}

// FullName returns the repository id in "owner/name" form.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

func (r RepoRef) ref() string {
	if r.Ref == "" {
		return "main"
	}
	return r.Ref
}

// ParseRepo splits an "owner/name" repository id.
func ParseRepo(id string) (RepoRef, error) {
	parts := strings.Split(id, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, goerr.New("invalid repo id, expected owner/name",
			goerr.V("repo", id))
	}
	return RepoRef{Owner: parts[0], Name: parts[1]}, nil
}

// File is one entry of the repository tree as returned by the Hub API.
type File struct {
	Path string   `json:"path"`
	Size int64    `json:"size"`
	Type string   `json:"type"` // "file"|"directory" (sometimes "blob"|"tree")
	Sha  string   `json:"oid"`
	Lfs  *LfsInfo `json:"lfs,omitempty"`
}

// LfsInfo is present for files stored via git-lfs.
type LfsInfo struct {
	Oid  string `json:"oid"`
	Size int64  `json:"size"`
}

// ByteSize returns the best known size: the LFS size when the tree entry
// itself carries none.
func (f File) ByteSize() int64 {
	if f.Size == 0 && f.Lfs != nil {
		return f.Lfs.Size
	}
	return f.Size
}

// Paths extracts the path of each file, preserving order.
func Paths(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

// Select returns the files whose paths appear in want, in want's order.
func Select(files []File, want []string) []File {
	byPath := make(map[string]File, len(files))
	for _, f := range files {
		if _, ok := byPath[f.Path]; !ok {
			byPath[f.Path] = f
		}
	}
	out := make([]File, 0, len(want))
	for _, p := range want {
		if f, ok := byPath[p]; ok {
			out = append(out, f)
		}
	}
	return out
}
