// Command season-cleanup removes season records whose save file no longer exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/seasonswap/internal/log"
	"github.com/chrissnell/seasonswap/internal/seasons"
	"github.com/chrissnell/seasonswap/internal/store"
	"github.com/chrissnell/seasonswap/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "seasonswap.yaml", "Path to the YAML configuration file")
	storePath := flag.String("store", "", "Season store to clean (overrides store.path)")
	savesDir := flag.String("saves", "", "Directory holding the save files (overrides saves.dir)")
	dryRun := flag.Bool("dry-run", false, "List stale records without removing them")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.NewYAMLProvider(*cfgFile).LoadConfig()
	if err != nil {
		if !os.IsNotExist(err) || (*storePath == "" || *savesDir == "") {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = &config.ConfigData{}
		cfg.ApplyDefaults()
	}
	if err := config.ApplyEnv(cfg); err != nil {
		log.Fatalf("Failed to apply environment: %v", err)
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *savesDir != "" {
		cfg.Saves.Dir = *savesDir
	}
	if cfg.Saves.Dir == "" {
		log.Fatalf("No saves directory: set saves.dir or pass -saves")
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", cfg.Store.Path, err)
	}
	defer st.Close()

	saves := seasons.DirSaves{Dir: cfg.Saves.Dir, Extension: cfg.Saves.Extension}
	ctx := context.Background()

	if *dryRun {
		stale, err := staleRecords(ctx, st, saves)
		if err != nil {
			log.Fatalf("Failed to list records: %v", err)
		}
		for _, name := range stale {
			fmt.Println(filepath.Join(saves.Dir, name+saves.Extension))
		}
		log.Infof("%d stale season records", len(stale))
		return
	}

	removed, err := seasons.CleanupSaves(ctx, st, saves)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	for _, name := range removed {
		fmt.Println(name)
	}
	log.Infof("removed %d stale season records", len(removed))
}

func staleRecords(ctx context.Context, st *store.Store, saves seasons.SaveEnumerator) ([]string, error) {
	names, err := st.Saves(ctx)
	if err != nil {
		return nil, err
	}
	var stale []string
	for _, name := range names {
		ok, err := saves.Exists(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			stale = append(stale, name)
		}
	}
	return stale, nil
}
