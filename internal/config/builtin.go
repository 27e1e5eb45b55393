package config

// BuiltinWindows returns the desktop used when no windows are configured.
func BuiltinWindows() []WindowSpec {
	return []WindowSpec{
		{
			ID:     "calc",
			Title:  "Calculator",
			X:      40,
			Y:      40,
			Width:  240,
			Height: 320,
			ZIndex: 10,
			Body:   "7 8 9 /\n4 5 6 *\n1 2 3 -\n0 . = +",
		},
		{
			ID:     "notes",
			Title:  "Notes",
			X:      320,
			Y:      80,
			Width:  420,
			Height: 300,
			ZIndex: 11,
			Body:   "Remember to water the plants.",
		},
		{
			ID:     "terminal",
			Title:  "Terminal",
			X:      200,
			Y:      260,
			Hidden: true,
			Body:   "$ _",
		},
	}
}

// BuiltinIcons returns the desktop icons matching BuiltinWindows.
func BuiltinIcons() []IconSpec {
	return []IconSpec{
		{ID: "icon-calc", Label: "Calculator", Window: "calc"},
		{ID: "icon-notes", Label: "Notes", Window: "notes"},
		{ID: "icon-terminal", Label: "Terminal", Window: "terminal"},
	}
}
