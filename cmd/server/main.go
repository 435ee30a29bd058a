package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/labelforge/sheet-engine/internal/api"
	"github.com/labelforge/sheet-engine/internal/store"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	port := getPort()

	profiles, err := store.New(getProfilesPath())
	if err != nil {
		log.Fatalf("Failed to open profile store: %v", err)
	}

	server := api.NewServer(profiles)

	addr := fmt.Sprintf("0.0.0.0:%s", port)
	log.Printf("sheet-engine %s listening on %s", Version, addr)
	if err := server.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func getPort() string {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		return port
	}

	for i, arg := range os.Args {
		if arg == "--port" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}

	return "12310"
}

// getProfilesPath returns the path to the settings profile file. It prefers
// the directory next to the executable and falls back to the working
// directory.
func getProfilesPath() string {
	if path := os.Getenv("PROFILE_STORE"); path != "" {
		return path
	}

	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		testFile := filepath.Join(exeDir, ".sheet-engine-write-test")
		if f, err := os.Create(testFile); err == nil {
			f.Close()
			os.Remove(testFile)
			return filepath.Join(exeDir, "settings_profiles.json")
		}
	}

	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "settings_profiles.json")
	}

	return "settings_profiles.json"
}
