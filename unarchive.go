package main

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
	"github.com/pkg/errors"

	"github.com/kanishka-raisania/education-lead-view/analytics"
)

// unpackArchive распаковывает zip, gz и lz4 в памяти. Для остальных расширений
// возвращает исходные имя и содержимое.
func unpackArchive(fileName string, data []byte) (string, []byte, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".zip":
		return unpackZipArchive(data)
	case ".gz":
		return unpackStream(strings.TrimSuffix(fileName, filepath.Ext(fileName)), func(r io.Reader) (io.Reader, error) {
			return gzip.NewReader(r)
		}, data)
	case ".lz4":
		return unpackStream(strings.TrimSuffix(fileName, filepath.Ext(fileName)), func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		}, data)
	}
	return fileName, data, nil
}

func unpackZipArchive(data []byte) (string, []byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, errors.Wrap(analytics.ErrMalformedFile, err.Error())
	}

	// Find largest file in archive
	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", nil, errors.Wrap(analytics.ErrMalformedFile, "empty zip archive")
	}

	rc, err := largestFile.Open()
	if err != nil {
		return "", nil, errors.Wrapf(analytics.ErrMalformedFile, "open %s: %v", largestFile.Name, err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, errors.Wrapf(analytics.ErrMalformedFile, "read %s: %v", largestFile.Name, err)
	}
	return filepath.Base(largestFile.Name), content, nil
}

func unpackStream(name string, open func(io.Reader) (io.Reader, error), data []byte) (string, []byte, error) {
	r, err := open(bytes.NewReader(data))
	if err != nil {
		return "", nil, errors.Wrap(analytics.ErrMalformedFile, err.Error())
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", nil, errors.Wrapf(analytics.ErrMalformedFile, "unpack %s: %v", name, err)
	}
	return name, content, nil
}
