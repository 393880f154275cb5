// Package ui provides semantic text formatting for rotp output.
//
// Formatters render with colour when the terminal supports it. When NO_COLOR
// is set or the terminal cannot show colour, text decorations are used
// instead:
//
//	ui.Code.Sprint("rotp init")          // `rotp init`
//	ui.Label.Sprint("GitHub:alice")      // 'GitHub:alice'
//	ui.Muted.Sprint("hotp")              // (hotp)
//	ui.Danger.Sprint("secret shown")     // !! secret shown !!
//	ui.Path.Sprint("~/codes.tar.rotp")   // unchanged
//
// WriteTable lays out the credential listing in aligned columns.
package ui
