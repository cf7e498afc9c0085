// Command areas-build converts e-Stat chōme/aza population CSV extracts
// into the out/areas_top10.json lookup consumed by the web front end, and
// mirrors it to web/ on a best-effort basis.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	areas "github.com/psycho0617-create/city-area-randomizer"
)

var (
	dataGlob   string
	topN       int
	outJSON    string
	encodingIn string
	headerRow  int
	stripOaza  bool
	keepLevel4 bool
)

var rootCmd = &cobra.Command{
	Use:          "areas-build",
	Short:        "e-Stat CSVから市区町村ごとの人口上位NエリアJSONを生成します。",
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&dataGlob, "data-glob", "data/**/*.csv", "入力CSVのglobパターン")
	f.IntVar(&topN, "topn", 10, "市区町村内で保持する上位N件")
	f.StringVar(&outJSON, "out", "out/areas_top10.json", "出力JSONのパス")
	f.StringVar(&encodingIn, "encoding", "cp932", "入力CSVの文字コード（cp932想定）")
	f.IntVar(&headerRow, "header-row", 3, "CSVヘッダー行（0始まり）。e-Statは3が多い")
	f.BoolVar(&stripOaza, "strip-oaza", false, "表示名から先頭の「大字」「字」を削除する（推奨）")
	f.BoolVar(&keepLevel4, "keep-level4", false, "地域階層レベル4（丁目など）も残す")
}

func run(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	doc, stats, err := areas.Build(
		areas.WithDataGlob(dataGlob),
		areas.WithTopN(topN),
		areas.WithOutPath(outJSON),
		areas.WithEncoding(encodingIn),
		areas.WithHeaderRow(headerRow),
		areas.WithStripPrefix(stripOaza),
		areas.WithKeepFiner(keepLevel4),
		areas.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	fmt.Printf("OK: %s を生成しました\n", outJSON)
	fmt.Printf("  市区町村数: %d / 使用CSV: %d / スキップCSV: %d\n",
		len(doc), stats.FilesUsed, stats.FilesSkipped)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
