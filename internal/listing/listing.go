package listing

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Stdin is the path argument that selects standard input.
const Stdin = "-"

// Kind identifies how a listing source is read.
type Kind string

const (
	KindText  Kind = "text"
	KindZip   Kind = "zip"
	KindTarGz Kind = "tar.gz"
)

// KindOf picks the reader for path by extension.
func KindOf(path string) Kind {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return KindZip
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return KindTarGz
	default:
		return KindText
	}
}

// Load reads the listing at path. Stdin ("-") is read from stdin as text.
func Load(path string, stdin io.Reader) ([]string, error) {
	if path == Stdin {
		return ReadText(stdin)
	}

	switch KindOf(path) {
	case KindZip:
		return ReadZip(path)
	case KindTarGz:
		return ReadTarGz(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening listing: %w", err)
	}
	defer f.Close()
	return ReadText(f)
}

// ReadText reads one entry per line. Surrounding whitespace is trimmed;
// blank lines and lines starting with # are skipped.
func ReadText(r io.Reader) ([]string, error) {
	files := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}
	return files, nil
}

// ReadZip returns the entry names from a zip archive's central directory,
// directories included, in archive order.
func ReadZip(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening zip archive: %w", err)
	}
	defer r.Close()

	files := make([]string, 0, len(r.File))
	for _, f := range r.File {
		files = append(files, f.Name)
	}
	return files, nil
}

// ReadTarGz returns the header names of a gzip-compressed tarball.
func ReadTarGz(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	files := []string{}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading tar entry: %w", err)
		}
		name := hdr.Name
		if hdr.Typeflag == tar.TypeDir && !strings.HasSuffix(name, "/") {
			name += "/"
		}
		files = append(files, name)
	}
	return files, nil
}
