/*
   FluxDisk - floppy track codec
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of FluxDisk.

   FluxDisk is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   FluxDisk is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with FluxDisk. If not, see <http://www.gnu.org/licenses/>.
*/

package repo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// PrefixRepoRef marks references to files in the capture repository
const PrefixRepoRef = "repo://"

//
func newFileSource(file string) (*fileSource, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	return &fileSource{file: f, reader: bufio.NewReader(f)}, nil
}

//
type fileSource struct {
	file   *os.File
	reader io.Reader
}

//
func (fs *fileSource) Read(p []byte) (n int, err error) {
	return fs.reader.Read(p)
}

//
func (fs *fileSource) Close() error {
	return fs.file.Close()
}

// Resolve opens the file referenced by ref within repository folder repo.
func Resolve(ref, repo string) (io.ReadCloser, error) {

	log.WithFields(log.Fields{
		"reference":  ref,
		"repository": repo,
	}).Debug("resolving ref")

	if !IsReference(ref) {
		return nil, fmt.Errorf("unsupported reference: %s", ref)
	}

	if repo == "" {
		return nil, fmt.Errorf("capture repository is not enabled")
	}

	path, err := resolvePath(ref[len(PrefixRepoRef):], repo)
	if err != nil {
		return nil, err
	}
	return newFileSource(path)
}

// resolvePath joins rel onto repo, refusing paths that leave the repository
func resolvePath(rel, repo string) (string, error) {
	base, err := filepath.Abs(repo)
	if err != nil {
		return "", err
	}
	path := filepath.Join(base, filepath.FromSlash(rel))
	if path != base && !strings.HasPrefix(path, base+string(filepath.Separator)) {
		return "", fmt.Errorf("reference outside of repository: %s", rel)
	}
	return path, nil
}

//
func IsReference(r string) bool {
	return strings.HasPrefix(r, PrefixRepoRef)
}
