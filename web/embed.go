// Package web embeds the static storefront and admin panel served by
// the backend binary.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
