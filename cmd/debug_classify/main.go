package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"election-results/core/feed"
	"election-results/feature/races"
	"election-results/feature/races/models"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		log.Fatalf("usage: %s metadata.json [measures]", os.Args[0])
	}
	onlyMeasures := len(os.Args) == 3 && os.Args[2] == "measures"

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	doc, err := feed.ParseDocument(data)
	if err != nil {
		log.Fatal(err)
	}

	counts := make(map[string]int)
	for _, raceID := range doc.Keys() {
		raw, _ := doc.Get(raceID)
		var meta models.MetadataEntry
		if err := json.Unmarshal(raw, &meta); err != nil {
			fmt.Printf("%-16s ERROR %v\n", raceID, err)
			counts["error"]++
			continue
		}

		measure := races.IsBallotMeasure(&meta)
		kind := "candidate"
		if measure {
			kind = "measure"
		}
		counts[kind]++
		if onlyMeasures && !measure {
			continue
		}
		fmt.Printf("%-16s %-9s office=%-4s supp=%-4s name=%q\n",
			raceID, kind, deref(meta.OfficeID), deref(meta.SuppOfficeID), deref(meta.OfficeName))
	}

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	fmt.Println()
	for _, k := range kinds {
		fmt.Printf("%s: %d\n", k, counts[k])
	}
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
