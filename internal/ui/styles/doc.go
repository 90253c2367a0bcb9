// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the slashdrop TUI.

All colors use Lip Gloss AdaptiveColor so one palette serves light and dark
terminals.

# Colors (colors.go)

  - Purple - header and composer border
  - Cyan - the template menu and its selection
  - Emerald - commit confirmations
  - Amber - warnings
  - Rose - errors

# Theme (theme.go)

Theme bundles the styles for the header, the composer box and the menu:

	theme := styles.NewNamedTheme(cfg.UI.Theme)
	box := theme.Composer.Width(60).Render(input.View())

The composer style's border and padding are read back by the caret locator,
so what is drawn and what is measured stay in step.
*/
package styles
