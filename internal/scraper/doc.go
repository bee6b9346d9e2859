// Package scraper fetches event pages from the game wikis and extracts
// event records: names and links from the current-events section, start
// and end dates from infoboxes and duration cells, and reward items from
// card galleries and reward tables.
//
// Wiki markup is volatile, so every extractor is a cascade of strategies
// tried in order, and a page that defeats all of them degrades to a
// partial record instead of failing the run.
package scraper
