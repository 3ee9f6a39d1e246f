package state

import (
	"fmt"
	"time"

	"arender/fonts"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// PrepareFonts loads font registry once per run.
func (e *LocalEnv) PrepareFonts() (fonts.Registry, error) {
	if e.Fonts != nil {
		return e.Fonts, nil
	}
	reg, err := fonts.NewDefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("unable to load fonts: %w", err)
	}
	e.Fonts = reg
	return reg, nil
}
