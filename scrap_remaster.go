package main

import (
	"flag"
	"log"

	"github.com/mogaika/scrap_remaster/config"
	"github.com/mogaika/scrap_remaster/vfs"
	"github.com/mogaika/scrap_remaster/web"
)

func main() {
	var settingsPath string
	settings := config.DefaultSettings()

	flag.StringVar(&settingsPath, "config", "", "Path to yaml settings, flags override it")
	flag.StringVar(&settings.Addr, "i", settings.Addr, "Address of server")
	flag.StringVar(&settings.Dir, "dir", "", "Path to extracted game files")
	flag.StringVar(&settings.Pack, "pack", "", "Path to .packed archive")
	flag.StringVar(&settings.Encoding, "encoding", settings.Encoding, "Codepage of game strings")
	flag.StringVar(&settings.LogDir, "logs", "", "Directory for per-file decode traces")
	flag.Parse()

	if settingsPath != "" {
		fileSettings, err := config.LoadSettings(settingsPath)
		if err != nil {
			log.Fatal(err)
		}
		// explicitly passed flags win over the file
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "i":
				fileSettings.Addr = settings.Addr
			case "dir":
				fileSettings.Dir = settings.Dir
			case "pack":
				fileSettings.Pack = settings.Pack
			case "encoding":
				fileSettings.Encoding = settings.Encoding
			case "logs":
				fileSettings.LogDir = settings.LogDir
			}
		})
		settings = fileSettings
	}

	if err := settings.Apply(); err != nil {
		log.Fatal(err)
	}

	var d vfs.Directory
	if settings.Pack != "" {
		pd, err := vfs.NewPackedDriverFromPath(settings.Pack)
		if err != nil {
			log.Fatal(err)
		}
		defer pd.Close()
		d = pd
	} else if settings.Dir != "" {
		d = vfs.NewDirectoryDriver(settings.Dir)
	} else {
		flag.PrintDefaults()
		return
	}

	if err := web.StartServer(settings.Addr, d); err != nil {
		log.Fatal(err)
	}
}
