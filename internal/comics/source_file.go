// Copyright (c) 2026 Mumo Comics. All rights reserved.
// Author: studio@mumocomics.com

package comics

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mumocomics/mumoweb/internal/platform/constants"
)

// # Backing-Store Errors

// Named error kinds for the file backend, distinguished for diagnostics.
// The repository rewraps them before they reach any caller.
var (
	// ErrContentDirNotFound indicates the designated content directory does not exist.
	ErrContentDirNotFound = errors.New("content directory not found")

	// ErrContentDirForbidden indicates the content directory exists but cannot be read.
	ErrContentDirForbidden = errors.New("content directory not readable")
)

// frontmatterDelimiter separates the metadata block from the body.
const frontmatterDelimiter = "---"

// datePrefix matches the optional YYYY-MM- filename prefix used for
// chronological sorting in directory listings.
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-`)

// # File Source

// FileSource loads the comic collection from a directory of .mdx files.
//
// # Fail-fast policy
//
// A single unreadable or invalid file fails the whole collection read.
// Partial availability is deliberately traded for data correctness: for a
// low-volume publishing workflow, silently dropping an issue from the
// archive is worse than surfacing the broken file.
type FileSource struct {
	dir    string
	logger *slog.Logger
}

// NewFileSource constructs a [FileSource] over the given content directory.
func NewFileSource(dir string, logger *slog.Logger) *FileSource {
	return &FileSource{dir: dir, logger: logger}
}

/*
Load enumerates the content directory and parses every recognized file.

Description: Entries whose name ends in the content-file extension are read,
split into a frontmatter block and a body, validated, and paired with the
trimmed body. The externally visible slug is derived from the filename, not
the metadata (see [SlugFromFilename]).

Returns:
  - []*Comic: The raw collection in directory-listing order
  - error: ErrContentDirNotFound / ErrContentDirForbidden for the directory,
    or the first file-level parse/validation failure
*/
func (source *FileSource) Load(ctx context.Context) ([]*Comic, error) {
	entries, err := os.ReadDir(source.dir)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("%w: %s", ErrContentDirNotFound, source.dir)
		case errors.Is(err, fs.ErrPermission):
			return nil, fmt.Errorf("%w: %s", ErrContentDirForbidden, source.dir)
		default:
			return nil, fmt.Errorf("comics: failed to list %s: %w", source.dir, err)
		}
	}

	collection := make([]*Comic, 0, len(entries))

	for _, entry := range entries {
		// Honor cancellation between files; a large archive should not pin
		// a dead request.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.ContentFileExtension) {
			continue
		}

		comic, err := source.loadFile(entry.Name())
		if err != nil {
			// Never skip a matching file that cannot be read: fail the
			// whole collection so the broken file gets fixed.
			return nil, err
		}

		collection = append(collection, comic)
	}

	source.logger.Debug("content_directory_loaded",
		slog.String("dir", source.dir),
		slog.Int("comics", len(collection)),
	)

	return collection, nil
}

// loadFile reads and parses one content file into a validated [Comic].
func (source *FileSource) loadFile(name string) (*Comic, error) {
	path := filepath.Join(source.dir, name)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrContentDirForbidden, path)
		}
		return nil, fmt.Errorf("comics: failed to read %s: %w", name, err)
	}

	metaBlock, body, err := splitFrontmatter(string(raw))
	if err != nil {
		return nil, fmt.Errorf("comics: %s: %w", name, err)
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(metaBlock), &meta); err != nil {
		return nil, fmt.Errorf("comics: %s: invalid frontmatter: %w", name, err)
	}

	comic, err := ValidateFrontmatter(meta)
	if err != nil {
		return nil, fmt.Errorf("comics: %s: %w", name, err)
	}

	// The filename is the authoritative identity; the declared slug only
	// had to pass validation.
	comic.Slug = SlugFromFilename(name)
	comic.Content = strings.TrimSpace(body)

	return comic, nil
}

// # Filename Conventions

// SlugFromFilename derives the logical slug from a content filename.
//
// The extension is stripped, along with an optional leading YYYY-MM- date
// prefix. The prefix lets files sort chronologically in a directory listing
// while the public identifier stays clean:
//
//	"2024-01-mumo-meets-world.mdx" → "mumo-meets-world"
//	"no-date-prefix.mdx"           → "no-date-prefix"
func SlugFromFilename(name string) string {
	base := strings.TrimSuffix(name, constants.ContentFileExtension)
	return datePrefix.ReplaceAllString(base, "")
}

// splitFrontmatter separates a content file into its metadata block and body.
//
// The file must open with a "---" line; the next "---" line closes the block.
func splitFrontmatter(raw string) (meta string, body string, err error) {
	trimmed := strings.TrimPrefix(raw, "\uFEFF") // tolerate a UTF-8 BOM

	if !strings.HasPrefix(trimmed, frontmatterDelimiter+"\n") &&
		trimmed != frontmatterDelimiter {
		return "", "", errors.New("missing frontmatter block")
	}

	rest := strings.TrimPrefix(trimmed, frontmatterDelimiter+"\n")

	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		return "", "", errors.New("unterminated frontmatter block")
	}

	meta = rest[:end]
	body = rest[end+len("\n"+frontmatterDelimiter):]
	body = strings.TrimPrefix(body, "\n")

	return meta, body, nil
}
