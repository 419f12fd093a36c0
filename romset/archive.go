package romset

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

func extractZIP(path string, member string) (data []byte, err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return
	}
	defer r.Close()

	for _, file := range r.File {
		if file.FileInfo().IsDir() || !matches(file.Name, member) {
			continue
		}

		var rc io.ReadCloser
		rc, err = file.Open()
		if err != nil {
			return
		}
		defer rc.Close()

		return limitedRead(rc)
	}

	err = ErrNoMember
	return
}

func extract7z(path string, member string) (data []byte, err error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return
	}
	defer r.Close()

	for _, file := range r.File {
		if file.FileInfo().IsDir() || !matches(file.Name, member) {
			continue
		}

		var rc io.ReadCloser
		rc, err = file.Open()
		if err != nil {
			return
		}
		defer rc.Close()

		return limitedRead(rc)
	}

	err = ErrNoMember
	return
}

func extractRAR(path string, member string) (data []byte, err error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return
	}
	defer r.Close()

	for {
		var header *rardecode.FileHeader
		header, err = r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return
		}

		if header.IsDir || !matches(header.Name, member) {
			continue
		}

		return limitedRead(r)
	}

	err = ErrNoMember
	return
}

// extractGzip reads a tar.gz member, or the whole of a plain gzip file.
func extractGzip(r io.Reader, path string, member string) (data []byte, err error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return
	}
	defer gr.Close()

	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".tar.gz") && !strings.HasSuffix(lower, ".tgz") {
		return limitedRead(gr)
	}

	tr := tar.NewReader(gr)
	for {
		var header *tar.Header
		header, err = tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return
		}

		if header.Typeflag != tar.TypeReg || !matches(filepath.Base(header.Name), member) {
			continue
		}

		return limitedRead(tr)
	}

	err = ErrNoMember
	return
}
