package areas

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// requiredColumns are the header names an input file must carry to be usable.
var requiredColumns = []string{
	"都道府県名",
	"市区町村名",
	"大字・町名",
	"字・丁目名",
	"総数",
	"地域階層レベル",
	"町丁字コード",
}

// The only fatal ingestion conditions. Per-file failures are skipped and
// counted instead.
var (
	ErrNoInputFiles  = errors.New("no input CSV files matched the pattern")
	ErrNoUsableFiles = errors.New("no input CSV file parsed successfully; check header row and encoding settings")
)

// lookupEncoding resolves a source encoding label. The legacy Japanese
// codepage aliases are handled explicitly; everything else goes through the
// WHATWG label index (utf-8, euc-jp, ...).
func lookupEncoding(label string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "cp932", "shift_jis", "shift-jis", "sjis", "windows-31j", "ms932":
		return japanese.ShiftJIS, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}
	return enc, nil
}

// resolveGlob expands a glob pattern into a sorted file list, supporting the
// recursive ** form (data/**/*.csv) that filepath.Glob does not. Unreadable
// directories are skipped rather than failing the walk; a missing root
// simply yields no files.
func resolveGlob(pattern string) ([]string, error) {
	i := strings.Index(pattern, "**")
	if i < 0 {
		files, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		sort.Strings(files)
		return files, nil
	}

	root := filepath.Dir(pattern[:i] + "x")
	base := strings.TrimPrefix(pattern[i+2:], "/")
	if base == "" {
		base = "*"
	}
	if _, err := filepath.Match(base, ""); err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(base, filepath.Base(path)); ok {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, nil
}

// ingestFile parses one CSV file into rows. The file's bytes are decoded
// through enc, the first headerRow records are discarded as preamble, and
// the next record is the header. An error means the whole file is unusable
// (undecodable, short, or missing a required column); no partial rows are
// returned, so a skipped file contributes nothing to the aggregation.
func ingestFile(path string, enc encoding.Encoding, headerRow int) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(transform.NewReader(f, enc.NewDecoder()))
	// e-Stat preamble and note lines are ragged; field counts vary per record.
	cr.FieldsPerRecord = -1

	for i := 0; i < headerRow; i++ {
		if _, err := cr.Read(); err != nil {
			return nil, fmt.Errorf("skipping preamble: %w", err)
		}
	}
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	field := func(rec []string, name string) string {
		if i := col[name]; i < len(rec) {
			return rec[i]
		}
		return ""
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		rows = append(rows, Row{
			Pref:      field(rec, "都道府県名"),
			City:      field(rec, "市区町村名"),
			OazaMachi: field(rec, "大字・町名"),
			AzaChome:  field(rec, "字・丁目名"),
			PopTotal:  field(rec, "総数"),
			Level:     field(rec, "地域階層レベル"),
			AreaCode:  field(rec, "町丁字コード"),
		})
	}
	return rows, nil
}
