// Package archive packages the generated document tree plus the raw
// plans export into one gzipped tarball.
package archive

import (
	"archive/tar"
	"bytes"
	"sort"
	"time"

	"github.com/klauspost/pgzip"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// Name is the packaged archive file name.
const Name = "runestone_files.tar.gz"

// Create packs the files into a tar.gz archive. Entries are written in
// sorted path order, so the same input produces the same layout.
func Create(files map[string]string) ([]byte, error) {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var buf bytes.Buffer
	gzWriter := pgzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzWriter)

	for _, path := range paths {
		content := []byte(files[path])
		header := &tar.Header{
			Name:    path,
			Mode:    0o644,
			Size:    int64(len(content)),
			ModTime: time.Unix(0, 0),
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			return nil, errors.PrefixErrorf(err, `cannot add "%s" to archive`, path)
		}
		if _, err := tarWriter.Write(content); err != nil {
			return nil, errors.PrefixErrorf(err, `cannot write "%s" to archive`, path)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return nil, errors.PrefixError(err, "cannot finish archive")
	}
	if err := gzWriter.Close(); err != nil {
		return nil, errors.PrefixError(err, "cannot finish archive compression")
	}
	return buf.Bytes(), nil
}
