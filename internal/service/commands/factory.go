package commands

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byAction map[string]actionFunc
}

func newActionFactory(onAssign, onComplete actionFunc) *actionFactory {
	return &actionFactory{
		byAction: map[string]actionFunc{
			ActionAssign:   onAssign,
			"assigned":     onAssign,
			ActionComplete: onComplete,
			"completed":    onComplete,
		},
	}
}

func (f *actionFactory) get(action string) (actionFunc, bool) {
	action = strings.ToLower(strings.TrimSpace(action))
	fn, ok := f.byAction[action]
	return fn, ok
}
