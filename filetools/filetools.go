// This file is part of spicebox.
//
// Copyright (C) 2019-2025  Rawser Spicer
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*
Package filetools - Tar archives of files and directories.
*/
package filetools

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"

	"github.com/spicebox-go/spicebox/internal/ctxlog"
)

// ErrUnknownCompression - The compression name is not supported.
var ErrUnknownCompression = errors.New("unknown compression")

// Compression - Stream compression applied to the tar archive.
type Compression int

const (
	Gzip Compression = iota
	Zstd
	None
)

var compressionNames = map[Compression]string{
	Gzip: "gzip",
	Zstd: "zstd",
	None: "none",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

// Suffix - File name suffix of archives using this compression.
func (c Compression) Suffix() string {
	switch c {
	case Gzip:
		return ".tar.gz"
	case Zstd:
		return ".tar.zst"
	}
	return ".tar"
}

// ParseCompression - Parses gzip, zstd or none, ignoring case.
func ParseCompression(s string) (Compression, error) {
	for c, name := range compressionNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

// CompressTar - Archives fileOrDir into archiveName.
// Entries are stored relative to the parent of fileOrDir, so the archive
// holds the base name of fileOrDir at its root.
// A failed or cancelled archive is removed.
func CompressTar(ctx context.Context, fileOrDir, archiveName string, c Compression) (err error) {
	logger := ctxlog.FromContext(ctx)
	if _, ok := compressionNames[c]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
	if _, err := os.Stat(fileOrDir); err != nil {
		return fmt.Errorf("failed to archive: %w", err)
	}

	f, err := os.Create(archiveName)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(archiveName)
		}
	}()

	self, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}

	var w io.WriteCloser
	switch c {
	case Gzip:
		w = gzip.NewWriter(f)
	case Zstd:
		w, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
	default:
		w = nopWriteCloser{f}
	}

	tw := tar.NewWriter(w)
	base := filepath.Dir(filepath.Clean(fileOrDir))
	err = filepath.WalkDir(fileOrDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil && os.SameFile(info, self) {
				logger.Debug("skipping archive inside its source", "archive", archiveName)
				return nil
			}
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		return addEntry(tw, path, filepath.ToSlash(rel), d)
	})
	if cerr := tw.Close(); err == nil {
		err = cerr
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", fileOrDir, err)
	}
	logger.Debug("archive written", "source", fileOrDir, "archive", archiveName, "compression", c.String())
	return nil
}

func addEntry(tw *tar.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	link := ""
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return err
		}
	}
	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return err
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return nil
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(tw, src)
	return err
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// ArchiveName - Default archive path for fileOrDir: its base name plus the
// compression suffix, in the current directory.
// "." and "/" take the name of the directory they resolve to.
func ArchiveName(fileOrDir string, c Compression) (string, error) {
	abs, err := filepath.Abs(fileOrDir)
	if err != nil {
		return "", err
	}
	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." {
		name = "root"
	}
	return name + c.Suffix(), nil
}

// CompressChildren - Archives every immediate child of dir into outDir,
// one archive per child named after it, concurrently.
// An outDir inside dir is not archived.
// Returns the archive paths in directory order.
func CompressChildren(ctx context.Context, dir, outDir string, c Compression) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	out, err := os.Stat(outDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	archives := []string{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, e := range entries {
		child := filepath.Join(dir, e.Name())
		if info, err := os.Stat(child); err == nil && os.SameFile(info, out) {
			continue
		}
		archive := filepath.Join(outDir, e.Name()+c.Suffix())
		archives = append(archives, archive)
		g.Go(func() error {
			return CompressTar(gctx, child, archive, c)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Info("archived children", "dir", dir, "count", len(archives))
	return archives, nil
}
