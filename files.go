package gitignore

import (
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
)

// CompileFile reads an ignore file and compiles it. A missing file is an
// error distinguishable with errors.Is(err, fs.ErrNotExist).
func CompileFile(path string) (*RuleSet, error) {
	return CompileFileEncoding(path, nil)
}

// CompileFileEncoding reads an ignore file stored in the given text encoding
// and compiles it. A nil encoding means the content is already UTF-8.
func CompileFileEncoding(path string, enc encoding.Encoding) (*RuleSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading ignore file %s", path)
	}
	if enc != nil {
		content, err = enc.NewDecoder().Bytes(content)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding ignore file %s", path)
		}
	}
	return Compile(content), nil
}

// FilterAccepted returns the subsequence of paths the rule set accepts,
// preserving input order.
func (rs *RuleSet) FilterAccepted(paths []string) []string {
	return rs.filter(paths, true)
}

// FilterDenied returns the subsequence of paths the rule set denies,
// preserving input order.
func (rs *RuleSet) FilterDenied(paths []string) []string {
	return rs.filter(paths, false)
}

func (rs *RuleSet) filter(paths []string, accepted bool) []string {
	var out []string
	for _, p := range paths {
		if rs.Accepts(p) == accepted {
			out = append(out, p)
		}
	}
	return out
}

// AcceptedFiles walks the supplied tree and returns every accepted entry,
// relative to the tree root. Directories contribute themselves suffixed with
// a separator; files contribute their plain relative path.
func (rs *RuleSet) AcceptedFiles(fsys fs.FS) ([]string, error) {
	return rs.listEntries(fsys, true)
}

// DeniedFiles is the complement of AcceptedFiles over the same tree.
func (rs *RuleSet) DeniedFiles(fsys fs.FS) ([]string, error) {
	return rs.listEntries(fsys, false)
}

func (rs *RuleSet) listEntries(fsys fs.FS, accepted bool) ([]string, error) {
	var out []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == "." {
			return nil
		}
		entry := path
		if d.IsDir() {
			entry += "/"
		}
		if rs.Accepts(entry) == accepted {
			out = append(out, entry)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking tree")
	}
	return out, nil
}
