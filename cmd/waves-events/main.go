package main

import (
	"github.com/pfrederiksen/gacha-events/internal/cli"
	"github.com/pfrederiksen/gacha-events/internal/scraper"
)

func main() {
	cli.Execute(scraper.Waves)
}
