package areas

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// BuildConfig holds the transformer's settings. Zero values are filled in
// by defaultBuildConfig; use the With* options to override.
type BuildConfig struct {
	DataGlob     string        // input CSV glob, ** supported
	TopN         int           // areas kept per municipality
	OutPath      string        // primary JSON output path
	Encoding     string        // source encoding label
	HeaderRow    int           // zero-indexed header record position
	StripPrefix  bool          // strip 大字/字 from display names
	KeepFiner    bool          // keep region hierarchy level >= 4 rows
	SummaryRules []SummaryRule // summary-row patterns
	MirrorDir    string        // best-effort secondary copy dir, "" disables
	Logger       *slog.Logger
}

// Option configures a build.
type Option func(*BuildConfig)

// WithDataGlob sets the input CSV glob pattern.
func WithDataGlob(pattern string) Option { return func(c *BuildConfig) { c.DataGlob = pattern } }

// WithTopN sets how many areas to keep per municipality.
func WithTopN(n int) Option { return func(c *BuildConfig) { c.TopN = n } }

// WithOutPath sets the primary output JSON path.
func WithOutPath(path string) Option { return func(c *BuildConfig) { c.OutPath = path } }

// WithEncoding sets the source encoding label (default cp932).
func WithEncoding(label string) Option { return func(c *BuildConfig) { c.Encoding = label } }

// WithHeaderRow sets the zero-indexed header record position.
func WithHeaderRow(n int) Option { return func(c *BuildConfig) { c.HeaderRow = n } }

// WithStripPrefix strips leading 大字/字 from display names.
func WithStripPrefix(v bool) Option { return func(c *BuildConfig) { c.StripPrefix = v } }

// WithKeepFiner retains rows at region hierarchy level 4 and finer.
func WithKeepFiner(v bool) Option { return func(c *BuildConfig) { c.KeepFiner = v } }

// WithSummaryRules replaces the default summary-row pattern rules.
func WithSummaryRules(rules []SummaryRule) Option {
	return func(c *BuildConfig) { c.SummaryRules = rules }
}

// WithMirrorDir sets the best-effort mirror directory; "" disables the mirror.
func WithMirrorDir(dir string) Option { return func(c *BuildConfig) { c.MirrorDir = dir } }

// WithLogger sets the logger used for skip warnings and the run summary.
func WithLogger(l *slog.Logger) Option { return func(c *BuildConfig) { c.Logger = l } }

func defaultBuildConfig() *BuildConfig {
	return &BuildConfig{
		DataGlob:     filepath.Join("data", "**", "*.csv"),
		TopN:         10,
		OutPath:      filepath.Join("out", "areas_top10.json"),
		Encoding:     "cp932",
		HeaderRow:    3,
		SummaryRules: DefaultSummaryRules(),
		MirrorDir:    "web",
		Logger:       slog.Default(),
	}
}

// Stats summarizes one build run for the operator.
type Stats struct {
	FilesUsed      int
	FilesSkipped   int
	Municipalities int
	Drops          map[string]int // discard tallies by reason
}

// aggregator accumulates population totals keyed by (pref, city, name).
// Entries keep first-encounter order so the later top-N sort can break
// population ties by which key was seen first.
type aggregator struct {
	index   map[AggKey]int
	entries []aggEntry
}

type aggEntry struct {
	key AggKey
	pop int
}

func newAggregator() *aggregator {
	return &aggregator{index: make(map[AggKey]int)}
}

// add folds one accepted row into the running totals. Duplicate keys (rows
// split or re-listed across files) are summed, never overwritten.
func (a *aggregator) add(key AggKey, pop int) {
	if i, ok := a.index[key]; ok {
		a.entries[i].pop += pop
		return
	}
	a.index[key] = len(a.entries)
	a.entries = append(a.entries, aggEntry{key: key, pop: pop})
}

// document partitions the aggregated entries by municipality and keeps the
// topn most populous areas of each, population descending with ties in
// first-encounter order.
func (a *aggregator) document(topn int) Document {
	byCity := make(map[Key][]Area)
	for _, e := range a.entries {
		k := Key{Pref: e.key.Pref, City: e.key.City}
		byCity[k] = append(byCity[k], Area{Name: e.key.Name, Pop: e.pop})
	}

	doc := make(Document, len(byCity))
	for k, list := range byCity {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Pop > list[j].Pop })
		if topn > 0 && len(list) > topn {
			list = list[:topn]
		}
		doc[k.String()] = Entry{Pref: k.Pref, City: k.City, Areas: list}
	}
	return doc
}

// WriteDocument writes doc as indented UTF-8 JSON at path, creating parent
// directories as needed. HTML escaping is disabled so Japanese text stays
// readable in the artifact. Keys are emitted in sorted order, making the
// output reproducible for identical inputs.
func WriteDocument(doc Document, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// Build runs the whole pipeline: resolve the glob, ingest each file,
// classify and aggregate rows, select the top N per municipality, and write
// the document plus its best-effort mirror. Per-file failures are skipped
// and counted; the only fatal conditions are an empty glob match and zero
// usable files.
func Build(opts ...Option) (Document, Stats, error) {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	enc, err := lookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, Stats{}, err
	}

	files, err := resolveGlob(cfg.DataGlob)
	if err != nil {
		return nil, Stats{}, err
	}
	if len(files) == 0 {
		return nil, Stats{}, fmt.Errorf("%w: %s", ErrNoInputFiles, cfg.DataGlob)
	}

	cl := NewClassifier(cfg.KeepFiner, cfg.StripPrefix, cfg.SummaryRules)
	agg := newAggregator()
	var stats Stats

	for _, path := range files {
		rows, err := ingestFile(path, enc, cfg.HeaderRow)
		if err != nil {
			stats.FilesSkipped++
			log.Warn("skipping unusable file", "path", path, "err", err)
			continue
		}
		stats.FilesUsed++
		for _, r := range rows {
			if key, pop, ok := cl.Classify(r); ok {
				agg.add(key, pop)
			}
		}
	}
	if stats.FilesUsed == 0 {
		return nil, stats, ErrNoUsableFiles
	}

	doc := agg.document(cfg.TopN)
	stats.Municipalities = len(doc)
	stats.Drops = cl.Drops

	if err := WriteDocument(doc, cfg.OutPath); err != nil {
		return nil, stats, err
	}
	if cfg.MirrorDir != "" {
		mirror := filepath.Join(cfg.MirrorDir, filepath.Base(cfg.OutPath))
		// The mirror is a convenience copy for the web front end; the
		// primary write alone decides success.
		if err := WriteDocument(doc, mirror); err != nil {
			log.Warn("mirror write failed", "path", mirror, "err", err)
		}
	}

	log.Info("build complete",
		"out", cfg.OutPath,
		"municipalities", stats.Municipalities,
		"files_used", stats.FilesUsed,
		"files_skipped", stats.FilesSkipped,
	)
	for _, reason := range sortedReasons(stats.Drops) {
		log.Info("rows dropped", "reason", reason, "count", stats.Drops[reason])
	}
	return doc, stats, nil
}

// sortedReasons orders drop reasons by count descending, then name, for a
// stable summary.
func sortedReasons(drops map[string]int) []string {
	reasons := make([]string, 0, len(drops))
	for r := range drops {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if drops[reasons[i]] != drops[reasons[j]] {
			return drops[reasons[i]] > drops[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	return reasons
}
