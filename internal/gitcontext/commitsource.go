package gitcontext

import "strings"

// CommitFileSource adapts a Context at a fixed commit to resolver.FileSource,
// reading version.json/version.txt out of that commit's tree rather than the
// working tree. The name is tried as given, then all lower case, then all
// upper case; other mixed-case spellings in the tree are not found.
type CommitFileSource struct {
	Context Context
	Commit  CommitID
}

func (c CommitFileSource) ReadVersionFile(dir, name string) ([]byte, bool, error) {
	repoRelativeDir := strings.TrimPrefix(dir, c.Context.WorkingTreePath())
	repoRelativeDir = strings.Trim(repoRelativeDir, "/\\")

	for _, candidate := range []string{name, strings.ToLower(name), strings.ToUpper(name)} {
		path := candidate
		if repoRelativeDir != "" {
			path = repoRelativeDir + "/" + candidate
		}
		data, ok, err := c.Context.ReadBlobAtPath(c.Commit, path)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return data, true, nil
		}
	}
	return nil, false, nil
}
