package dataset

import (
	"embed"
)

// FS embeds the bundled baseline dataset: the version manifest and the
// facility rows scraped from the curated source.
//
//go:embed data/*
var FS embed.FS
