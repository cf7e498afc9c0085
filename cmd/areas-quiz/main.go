// Command areas-quiz is an interactive smoke test over the built document:
// type a municipality name, get a random sample of its top areas.
//
// Usage:
//
//	go run ./cmd/areas-quiz
//
// Reads out/areas_top10.json; run areas-build first.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	areas "github.com/psycho0617-create/city-area-randomizer"
)

const dataPath = "out/areas_top10.json"

const sampleSize = 3

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	doc, err := areas.LoadDocument(dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s が見つかりません。先に areas-build を実行してね。", dataPath)
		}
		return err
	}

	idx := areas.NewIndex(doc)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	fmt.Println("市区町村名を入力してね（例：札幌市 / 品川区 / 那覇市）")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			break
		}
		q := strings.TrimSpace(sc.Text())
		if q == "" {
			continue
		}
		switch strings.ToLower(q) {
		case "q", "quit", "exit":
			return nil
		}

		entry, ok := idx.Lookup(q)
		if !ok {
			if cands := idx.Suggest(q, areas.MaxSuggestions); len(cands) > 0 {
				fmt.Println("見つからないけど近い候補：")
				for _, c := range cands {
					fmt.Println(" -", c)
				}
			} else {
				fmt.Println("見つからない。例：札幌市 / 品川区 / 那覇市")
			}
			continue
		}

		picks := areas.SampleAreas(entry, sampleSize, rng)
		fmt.Printf("\n%s %s（上位%dからランダム）\n", entry.Pref, entry.City, len(entry.Areas))
		for _, a := range picks {
			fmt.Printf(" - %s（%d人）\n", a.Name, a.Pop)
		}
		fmt.Println()
	}
	return sc.Err()
}
