package main

import (
	"fmt"
	"hyperschedule-service/internal/app/config"
	"os"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	fmt.Println(fmt.Sprintf("Version: %s", Version))
	fmt.Println(fmt.Sprintf("Tag: %s", Tag))

	if len(os.Args) < 2 {
		return
	}

	scrapersConfig, err := config.LoadScrapersConfig(os.Args[1])
	if err != nil {
		fmt.Println(fmt.Sprintf("Invalid scrapers file: %s", err.Error()))
		os.Exit(1)
	}
	for _, scraper := range scrapersConfig.Scrapers {
		fmt.Println(fmt.Sprintf("%s\tkind=%s\tenabled=%t", scraper.ID, scraper.Kind, scraper.Enabled))
	}
}
