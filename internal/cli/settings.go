package cli

import (
	"fmt"

	"habitkit/internal/constants"
)

type SettingsCmd struct {
	Theme SettingsThemeCmd `cmd:"" help:"Show or set the UI theme."`
}

type SettingsThemeCmd struct {
	Value string `arg:"" optional:"" help:"Theme to set: dark or light."`
}

func (c *SettingsThemeCmd) Run(ctx *Context) error {
	if c.Value == "" {
		theme, err := ctx.Store.GetMeta(constants.MetaTheme)
		if err != nil {
			return err
		}
		if theme == "" {
			theme = constants.ThemeLight
		}
		fmt.Printf("Theme: %s\n", theme)
		return nil
	}

	if c.Value != constants.ThemeDark && c.Value != constants.ThemeLight {
		return fmt.Errorf("invalid theme %q (expected dark or light)", c.Value)
	}
	if err := ctx.Store.SetMeta(constants.MetaTheme, c.Value); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s\n", c.Value)
	return nil
}
