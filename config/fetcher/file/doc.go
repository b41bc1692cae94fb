// Package file provides a file-based DataFetcher for the config package.
//
// The editor reads two kinds of files through it: the YAML service
// configuration and the JSON seed documents. Files are read through an
// afero.Fs, so tests can serve them from memory.
//
// The file is read once at construction time and cached. Every call to
// Fetch returns a fresh copy of the cached bytes.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("seeds/themes.json")()
//	if err != nil {
//	    // not found, permission denied, path is a directory
//	}
//	data, err := fetcher.Fetch()
//
// Use errors.Is(err, file.ErrPathIsDirectory) to detect directory paths.
package file
