// Package event defines the scraped event record, its reward variants,
// and the date parsing/validation rules shared by the scrapers and the
// presentation binaries.
package event
