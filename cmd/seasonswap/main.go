package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/seasonswap/internal/app"
	"github.com/chrissnell/seasonswap/internal/constants"
	"github.com/chrissnell/seasonswap/internal/log"
	"github.com/chrissnell/seasonswap/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "seasonswap.yaml", "Path to the YAML configuration file; SEASONSWAP_* variables override it")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", constants.Name, constants.Version)
		os.Exit(0)
	}

	cfgData, err := loadConfig(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if err := log.Init(*debug || cfgData.Debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Create and run the application
	application := app.New(cfgData, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		log.Sync()
		os.Exit(1)
	}
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	provider := config.NewYAMLProvider(filename)
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	if err := config.ApplyEnv(cfgData); err != nil {
		return nil, err
	}
	cfgData.ApplyDefaults()
	if err := cfgData.Validate(); err != nil {
		return nil, err
	}

	return cfgData, nil
}
