package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"tilecraft.ai/internal/sim/encoding"
	"tilecraft.ai/internal/sim/world"
)

// Reads a tick journal back and summarizes it: tick range, intent volume,
// event counts by type, and the terrain snapshots it carries.
func main() {
	var (
		ticksDir = flag.String("ticks", "", "ticks dir containing ticks-*.jsonl.zst")
		fromTick = flag.Uint64("from_tick", 0, "start at tick (inclusive, optional)")
		toTick   = flag.Uint64("to_tick", 0, "stop at tick (inclusive, optional)")
		dump     = flag.Bool("dump", false, "print every entry as JSON")
	)
	flag.Parse()

	if *ticksDir == "" {
		fmt.Fprintln(os.Stderr, "missing -ticks")
		os.Exit(2)
	}

	files, err := listTickFiles(*ticksDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list ticks:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "no tick files found in", *ticksDir)
		os.Exit(1)
	}

	var s summary
	for _, path := range files {
		if err := scanFile(path, *fromTick, *toTick, *dump, &s); err != nil {
			fmt.Fprintln(os.Stderr, "scan:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("ticks=%d range=[%d,%d] intents=%d terrain_snapshots=%d\n",
		s.ticks, s.firstTick, s.lastTick, s.intents, s.terrains)
	types := make([]string, 0, len(s.eventCounts))
	for t := range s.eventCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  event %-16s %d\n", t, s.eventCounts[t])
	}
}

type summary struct {
	ticks     uint64
	firstTick uint64
	lastTick  uint64
	intents   uint64
	terrains  int

	eventCounts map[string]int
}

func listTickFiles(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "ticks-") && strings.HasSuffix(name, ".jsonl.zst") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, filepath.Join(dir, name))
	}
	return out, nil
}

func scanFile(path string, fromTick, toTick uint64, dump bool, s *summary) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	for sc.Scan() {
		line := sc.Bytes()
		var entry world.TickEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return fmt.Errorf("%s: unmarshal: %w", filepath.Base(path), err)
		}
		if entry.Tick < fromTick {
			continue
		}
		if toTick != 0 && entry.Tick > toTick {
			return nil
		}

		if s.ticks == 0 {
			s.firstTick = entry.Tick
		}
		s.lastTick = entry.Tick
		s.ticks++
		s.intents += uint64(entry.Intents)

		if s.eventCounts == nil {
			s.eventCounts = map[string]int{}
		}
		for _, ev := range entry.Events {
			t, _ := ev["type"].(string)
			if t == "" {
				t = "?"
			}
			s.eventCounts[t]++
		}

		if entry.Terrain != nil {
			s.terrains++
			cells, err := encoding.DecodeRLE(entry.Terrain.Cells)
			if err != nil {
				return fmt.Errorf("tick %d: terrain: %w", entry.Tick, err)
			}
			if len(cells) != entry.Terrain.Width*entry.Terrain.Height {
				return fmt.Errorf("tick %d: terrain cell count %d for %dx%d grid",
					entry.Tick, len(cells), entry.Terrain.Width, entry.Terrain.Height)
			}
			fmt.Printf("tick %d: terrain %dx%d, %d block kinds\n",
				entry.Tick, entry.Terrain.Width, entry.Terrain.Height, len(entry.Terrain.Palette)-1)
		}

		if dump {
			fmt.Println(string(line))
		}
	}
	return sc.Err()
}
